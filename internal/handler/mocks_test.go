package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishReveal_Go/internal/catalog"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/session"
)

// MockSessions is a mock implementation of Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) StartBattle(ctx context.Context, b *domain.BattleOutcome) (session.Info, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(session.Info), args.Error(1)
}

func (m *MockSessions) StartBattleByID(ctx context.Context, battleID int64) (session.Info, error) {
	args := m.Called(ctx, battleID)
	return args.Get(0).(session.Info), args.Error(1)
}

func (m *MockSessions) StartSpins(ctx context.Context, spins []domain.SpinOutcome) (session.Info, error) {
	args := m.Called(ctx, spins)
	return args.Get(0).(session.Info), args.Error(1)
}

func (m *MockSessions) StartSpinsByID(ctx context.Context, spinIDs []int64) (session.Info, error) {
	args := m.Called(ctx, spinIDs)
	return args.Get(0).(session.Info), args.Error(1)
}

func (m *MockSessions) View(ctx context.Context, id string) (session.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockSessions) List() []session.Info {
	args := m.Called()
	return args.Get(0).([]session.Info)
}

func (m *MockSessions) Stop(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalog is a mock implementation of the box catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Pool(ctx context.Context, boxName string) ([]domain.PoolItem, error) {
	args := m.Called(ctx, boxName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PoolItem), args.Error(1)
}

func (m *MockCatalog) Boxes(ctx context.Context) ([]catalog.Box, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Box), args.Error(1)
}

// MockPinger is a mock readiness dependency
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

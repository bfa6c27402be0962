package outcome

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Battle(ctx context.Context, id int64) (*domain.BattleOutcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BattleOutcome), args.Error(1)
}

func (m *MockProvider) Spin(ctx context.Context, id int64) (*domain.SpinOutcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinOutcome), args.Error(1)
}

func TestPoller_WaitsUntilPublished(t *testing.T) {
	next := new(MockProvider)
	want := &domain.BattleOutcome{BattleID: 5, PlayerTeams: []int{0, 1}}
	next.On("Battle", mock.Anything, int64(5)).Return(nil, domain.ErrBattleNotFound).Twice()
	next.On("Battle", mock.Anything, int64(5)).Return(want, nil).Once()

	p := NewPoller(next, 5*time.Millisecond, time.Second)
	got, err := p.Battle(context.Background(), 5)
	require.NoError(t, err)
	assert.Same(t, want, got)
	next.AssertExpectations(t)
}

func TestPoller_OtherErrorsReturnImmediately(t *testing.T) {
	next := new(MockProvider)
	boom := errors.New("connection refused")
	next.On("Spin", mock.Anything, int64(1)).Return(nil, boom).Once()

	p := NewPoller(next, 5*time.Millisecond, time.Second)
	_, err := p.Spin(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	next.AssertNumberOfCalls(t, "Spin", 1)
}

func TestPoller_Timeout(t *testing.T) {
	next := new(MockProvider)
	next.On("Spin", mock.Anything, int64(2)).Return(nil, domain.ErrSpinNotFound)

	p := NewPoller(next, 5*time.Millisecond, 30*time.Millisecond)
	_, err := p.Spin(context.Background(), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSpinNotFound)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), ErrContextPollCancelled)
}

func TestPoller_Cancelled(t *testing.T) {
	next := new(MockProvider)
	next.On("Battle", mock.Anything, int64(3)).Return(nil, domain.ErrBattleNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPoller(next, time.Second, time.Minute)
	_, err := p.Battle(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(new(MockProvider), 0, 0)
	assert.Equal(t, DefaultPollInterval, p.interval)
	assert.Equal(t, DefaultPollTimeout, p.timeout)
}

package catalog

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

func TestCached_ServesRepeatLookupsFromCache(t *testing.T) {
	next := new(MockCatalog)
	pool := []domain.PoolItem{{Name: "Rock", Tier: domain.TierGray, Weight: 1}}
	next.On("Pool", mock.Anything, "Starter").Return(pool, nil).Once()

	c := NewCached(next, 4, time.Minute)
	ctx := context.Background()

	first, err := c.Pool(ctx, "Starter")
	require.NoError(t, err)
	second, err := c.Pool(ctx, "Starter")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())
	next.AssertNumberOfCalls(t, "Pool", 1)

	// mutating a result does not poison the cache
	second[0].Name = "changed"
	third, err := c.Pool(ctx, "Starter")
	require.NoError(t, err)
	assert.Equal(t, "Rock", third[0].Name)
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	next := new(MockCatalog)
	next.On("Pool", mock.Anything, "Flaky").Return(nil, errors.New("connection reset")).Once()
	next.On("Pool", mock.Anything, "Flaky").Return([]domain.PoolItem{{Name: "Rock"}}, nil).Once()

	c := NewCached(next, 4, time.Minute)
	_, err := c.Pool(context.Background(), "Flaky")
	require.Error(t, err)

	pool, err := c.Pool(context.Background(), "Flaky")
	require.NoError(t, err)
	assert.Len(t, pool, 1)
	next.AssertExpectations(t)
}

func TestCached_InvalidateAndClear(t *testing.T) {
	next := new(MockCatalog)
	next.On("Pool", mock.Anything, mock.Anything).Return([]domain.PoolItem{{Name: "Rock"}}, nil)

	c := NewCached(next, 0, 0)
	ctx := context.Background()
	_, _ = c.Pool(ctx, "A")
	_, _ = c.Pool(ctx, "B")
	assert.Equal(t, 2, c.Len())

	c.Invalidate("A")
	assert.Equal(t, 1, c.Len())
	_, _ = c.Pool(ctx, "A")
	next.AssertNumberOfCalls(t, "Pool", 3)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCached_Expiry(t *testing.T) {
	next := new(MockCatalog)
	next.On("Pool", mock.Anything, "A").Return([]domain.PoolItem{{Name: "Rock"}}, nil)

	c := NewCached(next, 4, 20*time.Millisecond)
	_, err := c.Pool(context.Background(), "A")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
	_, err = c.Pool(context.Background(), "A")
	require.NoError(t, err)
	next.AssertNumberOfCalls(t, "Pool", 2)
}

package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func fail() error    { return errBackend }
func succeed() error { return nil }

func TestStaysClosedOnSuccess(t *testing.T) {
	b := New(3, time.Minute, time.Minute)

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Do(succeed))
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestOpensAfterMaxFailures(t *testing.T) {
	b := New(3, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Do(fail), errBackend)
	}
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(fail), ErrOpen)
}

func TestOpenRefusesWithoutCalling(t *testing.T) {
	b := New(1, time.Minute, time.Minute)
	require.ErrorIs(t, b.Do(fail), errBackend)

	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestHalfOpenClosesOnSuccess(t *testing.T) {
	b := New(1, 10*time.Millisecond, time.Minute)
	require.ErrorIs(t, b.Do(fail), errBackend)
	require.Equal(t, StateOpen, b.State())

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, b.Do(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestHalfOpenReopensOnFailure(t *testing.T) {
	b := New(1, 10*time.Millisecond, time.Minute)
	require.ErrorIs(t, b.Do(fail), errBackend)

	time.Sleep(20 * time.Millisecond)
	assert.ErrorIs(t, b.Do(fail), errBackend)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(fail), ErrOpen)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b := New(3, time.Minute, time.Minute)

	require.ErrorIs(t, b.Do(fail), errBackend)
	require.ErrorIs(t, b.Do(fail), errBackend)
	require.NoError(t, b.Do(succeed))

	require.ErrorIs(t, b.Do(fail), errBackend)
	require.ErrorIs(t, b.Do(fail), errBackend)
	assert.Equal(t, StateClosed, b.State())
}

func TestOldFailuresAgeOut(t *testing.T) {
	b := New(2, time.Minute, 10*time.Millisecond)

	require.ErrorIs(t, b.Do(fail), errBackend)
	time.Sleep(20 * time.Millisecond)
	require.ErrorIs(t, b.Do(fail), errBackend)
	assert.Equal(t, StateClosed, b.State())
}

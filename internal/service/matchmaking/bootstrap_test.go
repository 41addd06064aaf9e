package matchmaking

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/iamasit07/dropblox-client/internal/domain"
	"github.com/iamasit07/dropblox-client/pkg/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchmaker struct {
	practiceGame *domain.GameSnapshot
	practiceErr  error
	competeQueue []*domain.CompeteResult
	competeErr   error
}

func (f *fakeMatchmaker) CreatePracticeGame() (*domain.GameSnapshot, error) {
	return f.practiceGame, f.practiceErr
}

func (f *fakeMatchmaker) GetCompeteGame() (*domain.CompeteResult, error) {
	if f.competeErr != nil {
		return nil, f.competeErr
	}
	result := f.competeQueue[0]
	f.competeQueue = f.competeQueue[1:]
	return result, nil
}

func newTestBootstrap(server Matchmaker) (*Bootstrap, *[]time.Duration) {
	b := NewBootstrap(server, console.New(io.Discard))
	slept := &[]time.Duration{}
	b.Sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return b, slept
}

func TestPracticeHandsOffImmediately(t *testing.T) {
	want := &domain.GameSnapshot{MovesMade: 0, SecondsRemaining: 600}
	b, slept := newTestBootstrap(&fakeMatchmaker{practiceGame: want})

	got, err := b.Practice()
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Empty(t, *slept)
}

func TestCompetePollsUntilMatched(t *testing.T) {
	want := &domain.GameSnapshot{SecondsRemaining: 300}
	b, slept := newTestBootstrap(&fakeMatchmaker{competeQueue: []*domain.CompeteResult{
		{Wait: true, WaitTime: 1.5},
		{Wait: true, WaitTime: 0.5},
		{Wait: true, WaitTime: 2},
		{Game: want},
	}})

	got, err := b.Compete()
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, []time.Duration{
		1500 * time.Millisecond,
		500 * time.Millisecond,
		2 * time.Second,
	}, *slept, "one sleep per wait response, at the server-suggested interval")
}

func TestCompeteImmediateMatchDoesNotSleep(t *testing.T) {
	want := &domain.GameSnapshot{}
	b, slept := newTestBootstrap(&fakeMatchmaker{competeQueue: []*domain.CompeteResult{{Game: want}}})

	got, err := b.Compete()
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Empty(t, *slept)
}

func TestCompetePropagatesChannelError(t *testing.T) {
	b, _ := newTestBootstrap(&fakeMatchmaker{competeErr: errors.New("server error")})
	_, err := b.Compete()
	require.Error(t, err)
}

package platform

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubPinger) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubPinger) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestGuardReadyProbesOnce(t *testing.T) {
	pinger := &stubPinger{}
	guard := NewGuard(pinger, nil)
	ctx := context.Background()

	assert.True(t, guard.Ready(ctx))
	assert.True(t, guard.Ready(ctx))
	assert.True(t, guard.Ready(ctx))
	assert.Equal(t, 1, pinger.callCount())
}

func TestGuardNotReadyOnPingFailure(t *testing.T) {
	pinger := &stubPinger{err: errors.New("connection refused")}
	guard := NewGuard(pinger, nil)

	assert.False(t, guard.Ready(context.Background()))
	assert.Equal(t, 1, pinger.callCount())
}

func TestGuardResetForcesReprobe(t *testing.T) {
	pinger := &stubPinger{err: errors.New("down")}
	guard := NewGuard(pinger, nil)
	ctx := context.Background()

	assert.False(t, guard.Ready(ctx))

	pinger.mu.Lock()
	pinger.err = nil
	pinger.mu.Unlock()
	guard.Reset()

	assert.True(t, guard.Ready(ctx))
	assert.Equal(t, 2, pinger.callCount())
}

func TestGuardNilPingerNeverReady(t *testing.T) {
	guard := NewGuard(nil, nil)

	assert.False(t, guard.Ready(context.Background()))
}

func TestGuardConcurrentReady(t *testing.T) {
	pinger := &stubPinger{}
	guard := NewGuard(pinger, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, guard.Ready(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, pinger.callCount())
}

package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	subs       []Type
	shouldFail func(call int) bool
}

func (m *mockBus) Publish(ctx context.Context, evt Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, evt)
	call := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(call) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, eventType)
}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newTestPublisher(t *testing.T, bus Bus, maxRetries int) (*ResilientPublisher, string) {
	t.Helper()

	deadLetterPath := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     maxRetries,
		RetryDelay:     5 * time.Millisecond,
		DeadLetterPath: deadLetterPath,
	})
	require.NoError(t, err)
	return rp, deadLetterPath
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	bus := &mockBus{}
	rp, _ := newTestPublisher(t, bus, 3)
	defer rp.Close()

	evt := Event{Type: MovementRecorded, Payload: map[string]interface{}{"farm_id": "farm-1"}}
	require.NoError(t, rp.Publish(context.Background(), evt))

	assert.Equal(t, 1, bus.CallCount())
}

func TestResilientPublisher_RetriesUntilSuccess(t *testing.T) {
	bus := &mockBus{
		// First two attempts fail, the third lands.
		shouldFail: func(call int) bool { return call < 3 },
	}
	rp, deadLetterPath := newTestPublisher(t, bus, 5)
	defer rp.Close()

	require.NoError(t, rp.Publish(context.Background(), Event{Type: AlertRaised}))

	require.Eventually(t, func() bool {
		return bus.CallCount() == 3
	}, 2*time.Second, 5*time.Millisecond)

	// Nothing dead-lettered on eventual success.
	assert.Empty(t, readDeadLetters(t, deadLetterPath))
}

func TestResilientPublisher_ExhaustedRetriesDeadLetter(t *testing.T) {
	bus := &mockBus{
		shouldFail: func(call int) bool { return true },
	}
	rp, deadLetterPath := newTestPublisher(t, bus, 2)

	evt := Event{Type: SyncConflictDetected, Payload: map[string]interface{}{"record_id": "rec-9"}}
	require.NoError(t, rp.Publish(context.Background(), evt))

	require.Eventually(t, func() bool {
		return len(readDeadLetters(t, deadLetterPath)) == 1
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Close())

	entries := readDeadLetters(t, deadLetterPath)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, SyncConflictDetected, entries[0].Event.Type)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, "mock publish error", entries[0].LastError)

	// Initial attempt plus two retries.
	assert.Equal(t, 3, bus.CallCount())
}

func TestResilientPublisher_PublishFailureDoesNotFailCaller(t *testing.T) {
	bus := &mockBus{
		shouldFail: func(call int) bool { return true },
	}
	rp, _ := newTestPublisher(t, bus, 1)
	defer rp.Close()

	err := rp.Publish(context.Background(), Event{Type: MovementRecorded})
	assert.NoError(t, err)
}

func TestResilientPublisher_CloseDeadLettersPendingRetries(t *testing.T) {
	bus := &mockBus{
		shouldFail: func(call int) bool { return true },
	}

	deadLetterPath := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     5,
		RetryDelay:     time.Minute, // first retry is far in the future
		DeadLetterPath: deadLetterPath,
	})
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), Event{Type: SyncDrainCompleted}))
	require.NoError(t, rp.Close())

	entries := readDeadLetters(t, deadLetterPath)
	require.Len(t, entries, 1)
	assert.Equal(t, SyncDrainCompleted, entries[0].Event.Type)
	assert.Equal(t, "mock publish error", entries[0].LastError)
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	bus := &mockBus{}
	rp, _ := newTestPublisher(t, bus, 3)
	defer rp.Close()

	rp.Subscribe(AlertRaised, func(ctx context.Context, evt Event) error { return nil })

	require.Len(t, bus.subs, 1)
	assert.Equal(t, AlertRaised, bus.subs[0])
}

func TestResilientPublisher_ConfigDefaults(t *testing.T) {
	rp, _ := newTestPublisher(t, &mockBus{}, 0)
	defer rp.Close()

	assert.Equal(t, RetryMaxAttempts, rp.cfg.MaxRetries)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second

	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}

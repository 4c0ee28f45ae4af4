package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	mu       sync.Mutex
	requests []string
	chatIDs  []int64
}

func (q *recordingQueue) Enqueue(chatID int64, city string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.requests = append(q.requests, city)
	q.chatIDs = append(q.chatIDs, chatID)
	return true
}

func (q *recordingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.requests)
}

func TestScheduler_QueuesDigestImmediately(t *testing.T) {
	q := &recordingQueue{}
	s := New(-100, "Анадырь", time.Hour, q, zerolog.Nop())
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return q.len() == 1 }, 2*time.Second, 10*time.Millisecond)

	q.mu.Lock()
	defer q.mu.Unlock()
	assert.Equal(t, "Анадырь", q.requests[0])
	assert.Equal(t, int64(-100), q.chatIDs[0])
}

func TestScheduler_DisabledWithoutCity(t *testing.T) {
	q := &recordingQueue{}
	s := New(-100, "", time.Minute, q, zerolog.Nop())
	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, q.len())
}

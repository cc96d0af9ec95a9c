// internal/queue/queue.go
package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
	Close() error
}

// InMemoryQueue fans every published payload out to the topic's subscribers
// on their own goroutine, retrying failed deliveries with a linear backoff.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	wg       sync.WaitGroup
	closed   bool

	MaxRetries int
	Backoff    time.Duration
	Log        *zap.SugaredLogger
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(log *zap.SugaredLogger) *InMemoryQueue {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		Log:        log,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return fmt.Errorf("queue closed")
	}
	handlers := q.handlers[topic]
	if len(handlers) > 0 {
		q.wg.Add(len(handlers))
	}
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{
			Topic:      topic,
			Payload:    payload,
			MaxRetries: q.MaxRetries,
		}
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	defer q.wg.Done()

	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			q.Log.Debugw("job processed", "topic", job.Topic)
			return
		}

		job.RetryCount++
		q.Log.Warnw("job failed", "topic", job.Topic, "attempt", job.RetryCount, "max_retries", job.MaxRetries, "error", err)

		if job.RetryCount > job.MaxRetries {
			q.Log.Errorw("job permanently failed", "topic", job.Topic, "attempts", job.RetryCount)
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return fmt.Errorf("queue closed")
	}
	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Close rejects further publishes and waits for in-flight deliveries.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

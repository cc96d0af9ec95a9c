package queue_test

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/unclebandit/churn-predictor/internal/model"
	"github.com/unclebandit/churn-predictor/internal/queue"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue(nil)
	defer q.Close()

	err := q.Publish("churn_predictions", 1)
	assert.Error(t, err)
}

func TestPublishRetriesUntilSuccess(t *testing.T) {
	q := queue.NewInMemoryQueue(nil)
	q.Backoff = time.Millisecond

	var calls int32
	require.NoError(t, q.Subscribe("topic", func(payload any) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}))

	require.NoError(t, q.Publish("topic", "hello"))
	require.NoError(t, q.Close())

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPublishGivesUpAfterMaxRetries(t *testing.T) {
	q := queue.NewInMemoryQueue(nil)
	q.Backoff = time.Millisecond
	q.MaxRetries = 2

	var calls int32
	require.NoError(t, q.Subscribe("topic", func(payload any) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent")
	}))

	require.NoError(t, q.Publish("topic", "hello"))
	require.NoError(t, q.Close())

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPublishAfterClose(t *testing.T) {
	q := queue.NewInMemoryQueue(nil)
	require.NoError(t, q.Subscribe("topic", func(payload any) error { return nil }))
	require.NoError(t, q.Close())

	assert.Error(t, q.Publish("topic", "late"))
	assert.Error(t, q.Subscribe("topic", func(payload any) error { return nil }))
}

func TestPredictionSubscriberTallies(t *testing.T) {
	q := queue.NewInMemoryQueue(nil)
	tally := &queue.Tally{}
	require.NoError(t, queue.StartPredictionSubscriber(q, "churn_predictions", tally, nil))

	require.NoError(t, q.Publish("churn_predictions", model.PredictionEvent{ID: "a", Label: model.LabelChurn}))
	require.NoError(t, q.Publish("churn_predictions", model.PredictionEvent{ID: "b", Label: model.LabelStay}))

	raw, err := json.Marshal(model.PredictionEvent{ID: "c", Label: model.LabelStay})
	require.NoError(t, err)
	require.NoError(t, q.Publish("churn_predictions", raw))

	// Undecodable payloads are dropped, not counted.
	require.NoError(t, q.Publish("churn_predictions", 42))
	require.NoError(t, q.Close())

	churn, stay := tally.Counts()
	assert.Equal(t, 1, churn)
	assert.Equal(t, 2, stay)
}

func TestDecodeEvent(t *testing.T) {
	ev := model.PredictionEvent{ID: "x", Label: model.LabelChurn, Message: model.MessageChurn}

	got, err := queue.DecodeEvent(&ev)
	require.NoError(t, err)
	assert.Equal(t, "x", got.ID)

	_, err = queue.DecodeEvent([]byte("{"))
	assert.Error(t, err)

	var nilEvent *model.PredictionEvent
	_, err = queue.DecodeEvent(nilEvent)
	assert.Error(t, err)
}

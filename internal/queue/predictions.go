// internal/queue/predictions.go
package queue

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/unclebandit/churn-predictor/internal/model"
)

// Tally counts prediction events by outcome.
type Tally struct {
	mu    sync.Mutex
	churn int
	stay  int
}

// Record adds one event to the tally.
func (t *Tally) Record(ev model.PredictionEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ev.Label == model.LabelChurn {
		t.churn++
		return
	}
	t.stay++
}

// Counts returns the churn and stay totals.
func (t *Tally) Counts() (churn, stay int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.churn, t.stay
}

// DecodeEvent accepts an event value, as published in memory, or its JSON
// encoding, as delivered by the broker.
func DecodeEvent(payload any) (model.PredictionEvent, error) {
	switch p := payload.(type) {
	case model.PredictionEvent:
		return p, nil
	case *model.PredictionEvent:
		if p == nil {
			return model.PredictionEvent{}, fmt.Errorf("nil prediction event")
		}
		return *p, nil
	case []byte:
		var ev model.PredictionEvent
		if err := json.Unmarshal(p, &ev); err != nil {
			return model.PredictionEvent{}, fmt.Errorf("decode prediction event: %w", err)
		}
		return ev, nil
	default:
		return model.PredictionEvent{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}

// StartPredictionSubscriber subscribes tally to topic. Undecodable payloads
// are logged and acknowledged so they are not retried.
func StartPredictionSubscriber(q Queue, topic string, tally *Tally, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return q.Subscribe(topic, func(payload any) error {
		ev, err := DecodeEvent(payload)
		if err != nil {
			log.Warnw("dropping prediction event", "error", err)
			return nil
		}

		tally.Record(ev)
		churn, stay := tally.Counts()
		log.Infow("📩 prediction recorded",
			"id", ev.ID,
			"label", ev.Label,
			"churn_total", churn,
			"stay_total", stay,
		)
		return nil
	})
}

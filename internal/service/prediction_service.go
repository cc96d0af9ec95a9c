// internal/service/prediction_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unclebandit/churn-predictor/internal/classifier"
	appErrors "github.com/unclebandit/churn-predictor/internal/errors"
	"github.com/unclebandit/churn-predictor/internal/model"
	"github.com/unclebandit/churn-predictor/internal/queue"
)

type PredictionService struct {
	Classifier classifier.Classifier
	Queue      queue.Queue // optional
	Topic      string
	Log        *zap.SugaredLogger
}

func NewPredictionService(c classifier.Classifier, q queue.Queue, topic string, log *zap.SugaredLogger) *PredictionService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PredictionService{
		Classifier: c,
		Queue:      q,
		Topic:      topic,
		Log:        log,
	}
}

// MessageFor maps a classifier label to the message shown to the user.
func MessageFor(label int) string {
	if label == model.LabelChurn {
		return model.MessageChurn
	}
	return model.MessageStay
}

// Predict normalizes raw, checks that every numeric field is set and asks
// the classifier for a label.
func (s *PredictionService) Predict(ctx context.Context, raw model.CustomerRecord) (*model.Prediction, error) {
	rec := Normalize(raw)

	for _, c := range rec.Numeric() {
		if c.Value == nil {
			return nil, appErrors.NewMissingValue(c.Name)
		}
	}

	label, probability, err := s.classify(ctx, rec)
	if err != nil {
		s.Log.Errorw("❌ inference failed", "model", s.Classifier.Name(), "error", err)
		return nil, fmt.Errorf("predict: %w", err)
	}

	pred := &model.Prediction{
		Label:       label,
		Message:     MessageFor(label),
		Churn:       label == model.LabelChurn,
		Probability: probability,
	}

	s.Log.Infow("✅ prediction", "model", s.Classifier.Name(), "label", label)
	s.publish(rec, pred)

	return pred, nil
}

// classify runs one inference. The probability is nil unless the classifier
// is a Scorer.
func (s *PredictionService) classify(ctx context.Context, rec model.CustomerRecord) (int, *float64, error) {
	if scorer, ok := s.Classifier.(classifier.Scorer); ok {
		label, p, err := scorer.PredictScore(ctx, rec)
		if err != nil {
			return 0, nil, err
		}
		return label, &p, nil
	}

	label, err := s.Classifier.Predict(ctx, rec)
	return label, nil, err
}

func (s *PredictionService) publish(rec model.CustomerRecord, pred *model.Prediction) {
	if s.Queue == nil {
		return
	}

	ev := model.PredictionEvent{
		ID:          uuid.NewString(),
		Label:       pred.Label,
		Message:     pred.Message,
		Probability: pred.Probability,
		Record:      rec,
		PredictedAt: time.Now().UTC(),
	}
	if err := s.Queue.Publish(s.Topic, ev); err != nil {
		s.Log.Warnw("⚠️ failed to publish prediction event", "topic", s.Topic, "error", err)
	}
}

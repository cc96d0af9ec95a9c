// internal/classifier/classifier.go
package classifier

import (
	"context"

	"github.com/unclebandit/churn-predictor/internal/model"
)

// Classifier maps one normalized record to a binary churn label.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Name() string
	Predict(ctx context.Context, rec model.CustomerRecord) (int, error)
}

// Scorer is implemented by classifiers that can return the churn
// probability together with the label from a single evaluation.
type Scorer interface {
	PredictScore(ctx context.Context, rec model.CustomerRecord) (int, float64, error)
}

// internal/classifier/logreg.go
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	appErrors "github.com/unclebandit/churn-predictor/internal/errors"
	"github.com/unclebandit/churn-predictor/internal/model"
)

// NumericTerm standardizes one numeric column before weighting it.
type NumericTerm struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Scale  float64 `json:"scale"`
	Weight float64 `json:"weight"`
}

// CategoricalTerm holds the one-hot weight of every known category.
// Unknown categories contribute nothing.
type CategoricalTerm struct {
	Column  string             `json:"column"`
	Weights map[string]float64 `json:"weights"`
}

// LogReg is a scaled, one-hot encoded logistic regression. It is immutable
// once loaded.
type LogReg struct {
	ModelName   string            `json:"name"`
	Threshold   float64           `json:"threshold"`
	Intercept   float64           `json:"intercept"`
	Numeric     []NumericTerm     `json:"numeric"`
	Categorical []CategoricalTerm `json:"categorical"`
}

var _ Classifier = (*LogReg)(nil)
var _ Scorer = (*LogReg)(nil)

// LoadLogReg reads and checks the artifact at path. Every failure is an
// *appErrors.ErrModelArtifact.
func LoadLogReg(path string) (*LogReg, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, appErrors.NewModelArtifact(path, err)
	}

	var m LogReg
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, appErrors.NewModelArtifact(path, fmt.Errorf("decode: %w", err))
	}
	if err := m.check(); err != nil {
		return nil, appErrors.NewModelArtifact(path, err)
	}
	return &m, nil
}

func (m *LogReg) check() error {
	if m.ModelName == "" {
		return fmt.Errorf("missing name")
	}
	if m.Threshold == 0 {
		m.Threshold = 0.5
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0, 1)", m.Threshold)
	}
	if len(m.Numeric) == 0 && len(m.Categorical) == 0 {
		return fmt.Errorf("no terms")
	}

	var empty model.CustomerRecord
	numeric := map[string]bool{}
	for _, c := range empty.Numeric() {
		numeric[c.Name] = true
	}
	for _, t := range m.Numeric {
		if !numeric[t.Column] {
			return fmt.Errorf("unknown numeric column %q", t.Column)
		}
		if t.Scale <= 0 {
			return fmt.Errorf("column %s: scale must be positive", t.Column)
		}
	}
	for _, t := range m.Categorical {
		if f, ok := model.FieldByColumn(t.Column); !ok || !f.Enumerated() {
			return fmt.Errorf("unknown categorical column %q", t.Column)
		}
	}
	return nil
}

func (m *LogReg) Name() string {
	return m.ModelName
}

// Score returns the churn probability of rec.
func (m *LogReg) Score(ctx context.Context, rec model.CustomerRecord) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	values := map[string]*float64{}
	for _, c := range rec.Numeric() {
		values[c.Name] = c.Value
	}
	categories := map[string]string{}
	for _, c := range rec.Categorical() {
		categories[c.Name] = c.Value
	}

	z := m.Intercept
	for _, t := range m.Numeric {
		v := values[t.Column]
		if v == nil {
			return 0, appErrors.NewMissingValue(t.Column)
		}
		z += t.Weight * (*v - t.Mean) / t.Scale
	}
	for _, t := range m.Categorical {
		z += t.Weights[categories[t.Column]]
	}

	return 1 / (1 + math.Exp(-z)), nil
}

// Predict returns model.LabelChurn when the probability reaches the threshold.
func (m *LogReg) Predict(ctx context.Context, rec model.CustomerRecord) (int, error) {
	label, _, err := m.PredictScore(ctx, rec)
	return label, err
}

// PredictScore returns the label and the churn probability it was derived from.
func (m *LogReg) PredictScore(ctx context.Context, rec model.CustomerRecord) (int, float64, error) {
	p, err := m.Score(ctx, rec)
	if err != nil {
		return 0, 0, err
	}
	if p >= m.Threshold {
		return model.LabelChurn, p, nil
	}
	return model.LabelStay, p, nil
}

package classifier_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/churn-predictor/internal/classifier"
	appErrors "github.com/unclebandit/churn-predictor/internal/errors"
	"github.com/unclebandit/churn-predictor/internal/model"
)

const tinyArtifact = `{
  "name": "tiny",
  "threshold": 0.6,
  "intercept": 0,
  "numeric": [{"column": "tenure", "mean": 0, "scale": 1, "weight": 1}],
  "categorical": [{"column": "Contract", "weights": {"Month-to-month": 2}}]
}`

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func floatPtr(v float64) *float64 { return &v }

func TestLoadLogRegMissingFile(t *testing.T) {
	_, err := classifier.LoadLogReg(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var artifactErr *appErrors.ErrModelArtifact
	require.True(t, errors.As(err, &artifactErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadLogRegRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		description string
		body        string
	}{
		{"not json", `pickle`},
		{"no name", `{"numeric": [{"column": "tenure", "scale": 1}]}`},
		{"no terms", `{"name": "x"}`},
		{"bad threshold", `{"name": "x", "threshold": 1.5, "numeric": [{"column": "tenure", "scale": 1}]}`},
		{"zero scale", `{"name": "x", "numeric": [{"column": "tenure", "scale": 0}]}`},
		{"unknown numeric", `{"name": "x", "numeric": [{"column": "Age", "scale": 1}]}`},
		{"numeric used as categorical", `{"name": "x", "categorical": [{"column": "tenure", "weights": {}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, err := classifier.LoadLogReg(writeArtifact(t, tt.body))
			var artifactErr *appErrors.ErrModelArtifact
			assert.True(t, errors.As(err, &artifactErr), "got %v", err)
		})
	}
}

func TestLogRegPredict(t *testing.T) {
	m, err := classifier.LoadLogReg(writeArtifact(t, tinyArtifact))
	require.NoError(t, err)
	assert.Equal(t, "tiny", m.Name())

	rec := model.CustomerRecord{Tenure: 0, Contract: "Month-to-month"}
	p, err := m.Score(context.Background(), rec)
	require.NoError(t, err)
	assert.InDelta(t, 0.8808, p, 1e-4)

	label, err := m.Predict(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.LabelChurn, label)

	label, scored, err := m.PredictScore(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.LabelChurn, label)
	assert.Equal(t, p, scored)

	// Unknown category contributes nothing: sigmoid(0) = 0.5 < 0.6.
	rec.Contract = "Two year"
	label, err = m.Predict(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.LabelStay, label)
}

func TestLogRegMissingNumeric(t *testing.T) {
	m, err := classifier.LoadLogReg(writeArtifact(t, `{
	  "name": "charges",
	  "numeric": [{"column": "MonthlyCharges", "mean": 0, "scale": 1, "weight": 1}]
	}`))
	require.NoError(t, err)

	_, err = m.Predict(context.Background(), model.CustomerRecord{})
	var missing *appErrors.ErrMissingValue
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "MonthlyCharges", missing.Column)
}

func TestLogRegCanceledContext(t *testing.T) {
	m, err := classifier.LoadLogReg(writeArtifact(t, tinyArtifact))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Predict(ctx, model.CustomerRecord{Contract: "Month-to-month"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShippedArtifact(t *testing.T) {
	m, err := classifier.LoadLogReg(filepath.Join("..", "..", "model", "customer_churn_logreg.json"))
	require.NoError(t, err)
	assert.Equal(t, "customer_churn_logreg", m.Name())

	loyal := model.CustomerRecord{
		Tenure: 72, MonthlyCharges: floatPtr(20), TotalCharges: floatPtr(1440),
		Gender: "Male", SeniorCitizen: "No", Partner: "Yes", Dependents: "Yes",
		PhoneService: "Yes", MultipleLines: "No", InternetService: "No",
		OnlineSecurity: "No", OnlineBackup: "No", DeviceProtection: "No", TechSupport: "No",
		StreamingTV: "No", StreamingMovies: "No", Contract: "Two year",
		PaperlessBilling: "No", PaymentMethod: "Mailed check",
	}
	label, err := m.Predict(context.Background(), loyal)
	require.NoError(t, err)
	assert.Equal(t, model.LabelStay, label)

	fresh := model.CustomerRecord{
		Tenure: 1, MonthlyCharges: floatPtr(95), TotalCharges: floatPtr(95),
		Gender: "Female", SeniorCitizen: "Yes", Partner: "No", Dependents: "No",
		PhoneService: "Yes", MultipleLines: "Yes", InternetService: "Fiber optic",
		OnlineSecurity: "No", OnlineBackup: "No", DeviceProtection: "No", TechSupport: "No",
		StreamingTV: "Yes", StreamingMovies: "Yes", Contract: "Month-to-month",
		PaperlessBilling: "Yes", PaymentMethod: "Electronic check",
	}
	label, err = m.Predict(context.Background(), fresh)
	require.NoError(t, err)
	assert.Equal(t, model.LabelChurn, label)
}

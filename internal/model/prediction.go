// internal/model/prediction.go
package model

import "time"

// Labels produced by the classifier.
const (
	LabelStay  = 0
	LabelChurn = 1
)

const (
	MessageChurn = "This customer is likely to CHURN."
	MessageStay  = "This customer is likely to STAY."
)

// Prediction is the outcome shown to the user.
type Prediction struct {
	Label       int      `json:"label"`
	Message     string   `json:"message"`
	Churn       bool     `json:"churn"`
	Probability *float64 `json:"probability,omitempty"`
}

// PredictionEvent is published after every successful prediction.
type PredictionEvent struct {
	ID          string         `json:"id"`
	Label       int            `json:"label"`
	Message     string         `json:"message"`
	Probability *float64       `json:"probability,omitempty"`
	Record      CustomerRecord `json:"record"`
	PredictedAt time.Time      `json:"predicted_at"`
}

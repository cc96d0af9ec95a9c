// internal/service/normalizer.go
package service

import "github.com/unclebandit/churn-predictor/internal/model"

var replaceMap = map[string]string{
	model.NoInternetService: "No",
	model.NoPhoneService:    "No",
}

// Normalize returns a copy of r with the "No internet service" and
// "No phone service" answers folded into "No". Numeric fields are untouched.
func Normalize(r model.CustomerRecord) model.CustomerRecord {
	r.MapStrings(NormalizeValue)
	return r
}

// NormalizeValue applies the replacement to a single answer.
func NormalizeValue(v string) string {
	if repl, ok := replaceMap[v]; ok {
		return repl
	}
	return v
}

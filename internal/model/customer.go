// internal/model/customer.go
package model

import "strconv"

// Placeholder answers that the classifier treats the same as a plain "No".
const (
	NoInternetService = "No internet service"
	NoPhoneService    = "No phone service"
)

// CustomerRecord is the flat set of attributes submitted for one prediction.
// Json names match the columns the classifier was trained on.
type CustomerRecord struct {
	Tenure         int      `json:"tenure" validate:"min=0,max=72"`
	MonthlyCharges *float64 `json:"MonthlyCharges" validate:"omitempty,min=0,max=200"`
	TotalCharges   *float64 `json:"TotalCharges" validate:"omitempty,min=0,max=10000"`

	Gender           string `json:"gender" validate:"domain=gender"`
	SeniorCitizen    string `json:"SeniorCitizen" validate:"domain=SeniorCitizen"`
	Partner          string `json:"Partner" validate:"domain=Partner"`
	Dependents       string `json:"Dependents" validate:"domain=Dependents"`
	PhoneService     string `json:"PhoneService" validate:"domain=PhoneService"`
	MultipleLines    string `json:"MultipleLines" validate:"domain=MultipleLines"`
	InternetService  string `json:"InternetService" validate:"domain=InternetService"`
	OnlineSecurity   string `json:"OnlineSecurity" validate:"domain=OnlineSecurity"`
	OnlineBackup     string `json:"OnlineBackup" validate:"domain=OnlineBackup"`
	DeviceProtection string `json:"DeviceProtection" validate:"domain=DeviceProtection"`
	TechSupport      string `json:"TechSupport" validate:"domain=TechSupport"`
	StreamingTV      string `json:"StreamingTV" validate:"domain=StreamingTV"`
	StreamingMovies  string `json:"StreamingMovies" validate:"domain=StreamingMovies"`
	Contract         string `json:"Contract" validate:"domain=Contract"`
	PaperlessBilling string `json:"PaperlessBilling" validate:"domain=PaperlessBilling"`
	PaymentMethod    string `json:"PaymentMethod" validate:"domain=PaymentMethod"`
}

// StringColumn is one categorical column of a record.
type StringColumn struct {
	Name  string
	Value string
}

// NumericColumn is one numeric column of a record. Value is nil when unset.
type NumericColumn struct {
	Name  string
	Value *float64
}

// Cell is one entry of the preview table.
type Cell struct {
	Column string
	Value  string
}

type stringRef struct {
	column string
	ptr    *string
}

func (r *CustomerRecord) stringRefs() []stringRef {
	return []stringRef{
		{"gender", &r.Gender},
		{"SeniorCitizen", &r.SeniorCitizen},
		{"Partner", &r.Partner},
		{"Dependents", &r.Dependents},
		{"PhoneService", &r.PhoneService},
		{"MultipleLines", &r.MultipleLines},
		{"InternetService", &r.InternetService},
		{"OnlineSecurity", &r.OnlineSecurity},
		{"OnlineBackup", &r.OnlineBackup},
		{"DeviceProtection", &r.DeviceProtection},
		{"TechSupport", &r.TechSupport},
		{"StreamingTV", &r.StreamingTV},
		{"StreamingMovies", &r.StreamingMovies},
		{"Contract", &r.Contract},
		{"PaperlessBilling", &r.PaperlessBilling},
		{"PaymentMethod", &r.PaymentMethod},
	}
}

// MapStrings replaces every string field with fn(value).
func (r *CustomerRecord) MapStrings(fn func(string) string) {
	for _, ref := range r.stringRefs() {
		*ref.ptr = fn(*ref.ptr)
	}
}

// SetString sets the categorical column by name. It reports false when the
// record has no such column.
func (r *CustomerRecord) SetString(column, value string) bool {
	for _, ref := range r.stringRefs() {
		if ref.column == column {
			*ref.ptr = value
			return true
		}
	}
	return false
}

// Categorical returns the string columns in record order.
func (r CustomerRecord) Categorical() []StringColumn {
	refs := r.stringRefs()
	cols := make([]StringColumn, 0, len(refs))
	for _, ref := range refs {
		cols = append(cols, StringColumn{Name: ref.column, Value: *ref.ptr})
	}
	return cols
}

// Numeric returns tenure and the two charge columns.
func (r CustomerRecord) Numeric() []NumericColumn {
	tenure := float64(r.Tenure)
	return []NumericColumn{
		{Name: "tenure", Value: &tenure},
		{Name: "MonthlyCharges", Value: r.MonthlyCharges},
		{Name: "TotalCharges", Value: r.TotalCharges},
	}
}

// Rows returns every column formatted for display, numeric columns first
// like the frame handed to the classifier.
func (r CustomerRecord) Rows() []Cell {
	var cells []Cell
	for _, c := range r.Numeric() {
		cells = append(cells, Cell{Column: c.Name, Value: formatNumber(c.Name, c.Value)})
	}
	for _, c := range r.Categorical() {
		cells = append(cells, Cell{Column: c.Name, Value: c.Value})
	}
	return cells
}

func formatNumber(column string, v *float64) string {
	if v == nil {
		return "None"
	}
	if column == "tenure" {
		return strconv.Itoa(int(*v))
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

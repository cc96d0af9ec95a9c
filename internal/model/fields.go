// internal/model/fields.go
package model

// ControlKind is how a field is rendered on the form.
type ControlKind string

const (
	ControlSelect ControlKind = "select"
	ControlRadio  ControlKind = "radio"
	ControlSlider ControlKind = "slider"
	ControlNumber ControlKind = "number"
)

// Field describes one input control. Options is set for enumerated fields,
// Min/Max/Step for numeric ones.
type Field struct {
	Column      string
	Label       string
	Control     ControlKind
	Options     []string
	Min         float64
	Max         float64
	Step        float64
	Placeholder string
}

var (
	yesNo        = []string{"Yes", "No"}
	yesNoPhone   = []string{"Yes", "No", NoPhoneService}
	yesNoNetwork = []string{"Yes", "No", NoInternetService}
)

// Fields lists the form controls in page order.
var Fields = []Field{
	{Column: "gender", Label: "Gender", Control: ControlSelect, Options: []string{"Male", "Female"}},
	{Column: "SeniorCitizen", Label: "Senior Citizen", Control: ControlRadio, Options: yesNo},
	{Column: "Partner", Label: "Partner", Control: ControlRadio, Options: yesNo},
	{Column: "Dependents", Label: "Dependents", Control: ControlRadio, Options: yesNo},
	{Column: "tenure", Label: "Tenure (Months)", Control: ControlSlider, Min: 0, Max: 72, Step: 1},
	{Column: "PhoneService", Label: "Phone Service", Control: ControlRadio, Options: yesNo},
	{Column: "MultipleLines", Label: "Multiple Lines", Control: ControlSelect, Options: yesNoPhone},
	{Column: "InternetService", Label: "Internet Service", Control: ControlSelect, Options: []string{"DSL", "Fiber optic", "No"}},
	{Column: "OnlineSecurity", Label: "Online Security", Control: ControlSelect, Options: yesNoNetwork},
	{Column: "OnlineBackup", Label: "Online Backup", Control: ControlSelect, Options: yesNoNetwork},
	{Column: "DeviceProtection", Label: "Device Protection", Control: ControlSelect, Options: yesNoNetwork},
	{Column: "TechSupport", Label: "Tech Support", Control: ControlSelect, Options: yesNoNetwork},
	{Column: "StreamingTV", Label: "Streaming TV", Control: ControlSelect, Options: yesNoNetwork},
	{Column: "StreamingMovies", Label: "Streaming Movies", Control: ControlSelect, Options: yesNoNetwork},
	{Column: "Contract", Label: "Contract", Control: ControlSelect, Options: []string{"Month-to-month", "One year", "Two year"}},
	{Column: "PaperlessBilling", Label: "Paperless Billing", Control: ControlRadio, Options: yesNo},
	{Column: "PaymentMethod", Label: "Payment Method", Control: ControlSelect, Options: []string{
		"Electronic check",
		"Mailed check",
		"Bank transfer (automatic)",
		"Credit card (automatic)",
	}},
	{Column: "MonthlyCharges", Label: "Monthly Charges ($)", Control: ControlNumber, Min: 0, Max: 200, Step: 0.01,
		Placeholder: "Enter a value between 0.0 and 200.0"},
	{Column: "TotalCharges", Label: "Total Charges ($)", Control: ControlNumber, Min: 0, Max: 10000, Step: 0.01,
		Placeholder: "Enter a value between 0.0 and 10000.0"},
}

// FieldByColumn looks up a field by its column name.
func FieldByColumn(column string) (Field, bool) {
	for _, f := range Fields {
		if f.Column == column {
			return f, true
		}
	}
	return Field{}, false
}

// Enumerated reports whether the field takes one of a fixed set of options.
func (f Field) Enumerated() bool {
	return len(f.Options) > 0
}

// Allows reports whether v is one of the field's options.
func (f Field) Allows(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Clamp bounds v to [Min, Max].
func (f Field) Clamp(v float64) float64 {
	if v < f.Min {
		return f.Min
	}
	if v > f.Max {
		return f.Max
	}
	return v
}

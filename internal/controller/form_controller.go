// internal/controller/form_controller.go
package controller

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/churn-predictor/internal/errors"
	"github.com/unclebandit/churn-predictor/internal/form"
	"github.com/unclebandit/churn-predictor/internal/model"
	"github.com/unclebandit/churn-predictor/internal/service"
)

//go:embed templates/index.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/index.html"))

const (
	ActionPreview = "preview"
	ActionPredict = "predict"
)

type FormController struct {
	PredictionService *service.PredictionService
	Log               *zap.SugaredLogger
}

type fieldView struct {
	model.Field
	Value string
}

type pageData struct {
	Fields     []fieldView
	Rows       []model.Cell
	Prediction *model.Prediction
	Error      string
}

// Show renders a fresh form.
func (c *FormController) Show(w http.ResponseWriter, r *http.Request) {
	c.render(w, http.StatusOK, newPage(form.Default()))
}

// Submit re-renders the form with the submitted values. Only the predict
// action runs the classifier.
func (c *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rec, err := form.Collect(r.PostForm)
	if err != nil {
		data := newPage(rec)
		data.Error = err.Error()
		c.render(w, http.StatusBadRequest, data)
		return
	}

	data := newPage(rec)
	if r.PostForm.Get("action") != ActionPredict {
		c.render(w, http.StatusOK, data)
		return
	}

	pred, err := c.PredictionService.Predict(r.Context(), rec)
	if err != nil {
		var missing *appErrors.ErrMissingValue
		if errors.As(err, &missing) {
			data.Error = missing.Error()
			c.render(w, http.StatusUnprocessableEntity, data)
			return
		}
		c.logger().Errorw("❌ prediction failed", "error", err)
		data.Error = "Prediction failed: " + err.Error()
		c.render(w, http.StatusInternalServerError, data)
		return
	}

	data.Prediction = pred
	c.render(w, http.StatusOK, data)
}

func newPage(rec model.CustomerRecord) pageData {
	data := pageData{Rows: service.Normalize(rec).Rows()}
	for _, f := range model.Fields {
		data.Fields = append(data.Fields, fieldView{Field: f, Value: fieldValue(rec, f)})
	}
	return data
}

func fieldValue(rec model.CustomerRecord, f model.Field) string {
	switch f.Column {
	case "tenure":
		return strconv.Itoa(rec.Tenure)
	case "MonthlyCharges":
		return formatCharge(rec.MonthlyCharges)
	case "TotalCharges":
		return formatCharge(rec.TotalCharges)
	}
	for _, col := range rec.Categorical() {
		if col.Name == f.Column {
			return col.Value
		}
	}
	return ""
}

func formatCharge(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (c *FormController) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, data); err != nil {
		c.logger().Errorw("failed to render page", "error", err)
	}
}

func (c *FormController) logger() *zap.SugaredLogger {
	if c.Log == nil {
		return zap.NewNop().Sugar()
	}
	return c.Log
}

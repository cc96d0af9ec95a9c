// cmd/server/app.go
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unclebandit/churn-predictor/internal/classifier"
	"github.com/unclebandit/churn-predictor/internal/config"
	"github.com/unclebandit/churn-predictor/internal/controller"
	"github.com/unclebandit/churn-predictor/internal/handler"
	"github.com/unclebandit/churn-predictor/internal/queue"
	"github.com/unclebandit/churn-predictor/internal/service"
)

type app struct {
	Router    http.Handler
	ModelName string
	Queue     queue.Queue
	Tally     *queue.Tally
}

func (a *app) Close() error {
	if a.Queue == nil {
		return nil
	}
	return a.Queue.Close()
}

// setup loads the model artifact and wires every component. A missing or
// unreadable artifact is returned as an error before anything is served.
func setup(cfg config.Config, log *zap.SugaredLogger) (*app, error) {
	clf, err := classifier.LoadLogReg(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	log.Infow("✅ Model loaded", "path", cfg.ModelPath, "model", clf.Name())

	q, tally := newQueue(cfg, log)

	predictionService := service.NewPredictionService(clf, q, cfg.PredictionQueue, log)

	formController := &controller.FormController{
		PredictionService: predictionService,
		Log:               log,
	}
	healthHandler := handler.NewHealthHandler(clf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/", formController.Show)
	r.Post("/", formController.Submit)
	r.Get("/healthz", healthHandler.Health)

	return &app{
		Router:    r,
		ModelName: clf.Name(),
		Queue:     q,
		Tally:     tally,
	}, nil
}

// newQueue connects to RabbitMQ when configured and falls back to the
// in-memory queue, whose events are tallied in process.
func newQueue(cfg config.Config, log *zap.SugaredLogger) (queue.Queue, *queue.Tally) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, log)
		if err == nil {
			log.Infow("📡 Publishing predictions to RabbitMQ", "queue", cfg.PredictionQueue)
			return q, nil
		}
		log.Warnw("⚠️ RabbitMQ unavailable, using in-memory queue", "error", err)
	}

	q := queue.NewInMemoryQueue(log)
	tally := &queue.Tally{}
	if err := queue.StartPredictionSubscriber(q, cfg.PredictionQueue, tally, log); err != nil {
		log.Warnw("⚠️ Failed to start prediction subscriber", "error", err)
	}
	return q, tally
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("📥 request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// cmd/worker/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unclebandit/churn-predictor/internal/config"
	"github.com/unclebandit/churn-predictor/internal/logger"
	"github.com/unclebandit/churn-predictor/internal/queue"
)

func main() {
	cfg, _ := config.Load()

	base, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer base.Sync()
	log := base.Sugar()

	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, log)
	if err != nil {
		log.Fatalw("Failed to connect to RabbitMQ", "error", err)
	}
	defer q.Close()

	tally, err := startWorker(q, cfg.PredictionQueue, log)
	if err != nil {
		log.Fatalw("Failed to register consumer", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("Worker running, waiting for predictions...", "queue", cfg.PredictionQueue)
	<-ctx.Done()

	churn, stay := tally.Counts()
	log.Infow("Worker stopped", "churn_total", churn, "stay_total", stay)
}

// startWorker tallies every prediction event delivered on topic.
func startWorker(q queue.Queue, topic string, log *zap.SugaredLogger) (*queue.Tally, error) {
	tally := &queue.Tally{}
	if err := queue.StartPredictionSubscriber(q, topic, tally, log); err != nil {
		return nil, err
	}
	return tally, nil
}

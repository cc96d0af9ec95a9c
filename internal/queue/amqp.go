// internal/queue/amqp.go
package queue

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPQueue publishes and consumes JSON payloads on durable RabbitMQ queues
// named after the topic. Subscribers receive the raw message body.
type AMQPQueue struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.SugaredLogger
}

var _ Queue = (*AMQPQueue)(nil)

// DialAMQP connects to the broker at url.
func DialAMQP(url string, log *zap.SugaredLogger) (*AMQPQueue, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to queue: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open queue channel: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch, log: log}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	dq, err := q.declare(topic)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}

	return q.ch.Publish(
		"",
		dq.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Subscribe consumes topic until the channel closes. A failed delivery is
// requeued once and dropped on its second failure.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	dq, err := q.declare(topic)
	if err != nil {
		q.mu.Unlock()
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	msgs, err := q.ch.Consume(
		dq.Name,
		"",
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			herr := handler(d.Body)
			if herr != nil {
				q.log.Warnw("delivery failed", "topic", topic, "redelivered", d.Redelivered, "error", herr)
			}
			if err := settle(d, d.Redelivered, herr); err != nil {
				q.log.Errorw("failed to settle delivery", "topic", topic, "error", err)
			}
		}
	}()

	return nil
}

// acknowledger is the part of amqp.Delivery that settles a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// settle acks a handled delivery. A failed first delivery is requeued, a
// failed redelivery is dropped.
func settle(d acknowledger, redelivered bool, handlerErr error) error {
	if handlerErr == nil {
		return d.Ack(false)
	}
	return d.Nack(false, !redelivered)
}

func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

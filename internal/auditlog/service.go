package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Service records mutation audit entries. Logging is fire-and-forget:
// a broker failure is logged and swallowed, never surfaced to the
// mutation that triggered it.
type Service interface {
	LogAction(ctx context.Context, action, entity, entityID, ip string)
	Enabled() bool
	Close() error
}

type service struct {
	writer *kafka.Writer
}

// NewService builds a Kafka-backed audit service. An empty broker list
// disables auditing entirely (noop).
func NewService(brokers []string, topic string) Service {
	if len(brokers) == 0 {
		return noop{}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("⚠️ auditlog: "+msg, args...)
		}),
	}
	return &service{writer: w}
}

func (s *service) LogAction(ctx context.Context, action, entity, entityID, ip string) {
	entry := Entry{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		ClientIP: ip,
		At:       time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("⚠️ auditlog: encode entry: %v", err)
		return
	}
	// Async writer: queues and returns; delivery errors reach the
	// ErrorLogger, not the caller.
	if err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entity),
		Value: data,
	}); err != nil {
		log.Printf("⚠️ auditlog: write %s: %v", action, err)
	}
}

func (s *service) Enabled() bool { return true }

func (s *service) Close() error { return s.writer.Close() }

type noop struct{}

func (noop) LogAction(context.Context, string, string, string, string) {}
func (noop) Enabled() bool                                             { return false }
func (noop) Close() error                                              { return nil }

// Package audit publishes compliance evaluation events to Kafka. Publishing
// is best-effort: a broker outage never fails the evaluation that produced
// the event.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/pkg/constants"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// Event is one audit record describing a compliance evaluation.
type Event struct {
	Timestamp       time.Time           `json:"timestamp"`
	RequestID       string              `json:"requestId,omitempty"`
	BusinessID      int64               `json:"businessId,omitempty"`
	Industry        string              `json:"industry"`
	County          string              `json:"county"`
	Size            string              `json:"size"`
	ComplianceScore int                 `json:"complianceScore"`
	RiskLevel       constants.RiskLevel `json:"riskLevel"`
	RegulationCount int                 `json:"regulationCount"`
	CacheHit        bool                `json:"cacheHit"`
}

// Publisher emits audit events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// KafkaPublisher writes audit events to a Kafka topic.
type KafkaPublisher struct {
	writer  *kafka.Writer
	logger  logger.Logger
	metrics *monitoring.Metrics
}

// NewKafkaPublisher creates a Kafka-backed audit publisher.
func NewKafkaPublisher(cfg *config.AuditConfig, log logger.Logger, metrics *monitoring.Metrics) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return &KafkaPublisher{
		writer:  writer,
		logger:  log.WithComponent("audit"),
		metrics: metrics,
	}
}

// Publish sends one event. Failures are logged and counted, never returned.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal audit event", err)
		p.metrics.AuditEventDropped()
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{Value: data})
	if err != nil {
		p.logger.Warn(ctx, "failed to publish audit event",
			logger.String("error", err.Error()),
			logger.Int64("business_id", event.BusinessID),
		)
		p.metrics.AuditEventDropped()
		return
	}
	p.metrics.AuditEventPublished()
}

// Close flushes and closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when auditing is disabled.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops every event.
func NewNoopPublisher() Publisher { return NoopPublisher{} }

// Publish discards the event.
func (NoopPublisher) Publish(context.Context, Event) {}

// Close is a no-op.
func (NoopPublisher) Close() error { return nil }

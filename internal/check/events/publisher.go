package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/linkguard/go-url-guard/internal/check/domain"
)

const (
	TopicURLChecked  = "url.checked"
	TopicURLRejected = "url.rejected"
)

// EventPublisher publishes check verdicts to Kafka for downstream
// consumers (audit trail, analytics).
type EventPublisher struct {
	producer sarama.SyncProducer
}

func NewEventPublisher(brokers []string) (*EventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &EventPublisher{producer: producer}, nil
}

func (p *EventPublisher) PublishURLChecked(ctx context.Context,
	rec *domain.CheckRecord) error {

	event := map[string]interface{}{
		"event_type": "url_checked",
		"timestamp":  rec.CreatedAt,
		"data": map[string]interface{}{
			"input":          rec.Input,
			"normalized_url": rec.NormalizedURL,
			"verdict":        rec.Verdict,
			"threat_type":    rec.ThreatType,
		},
	}

	return p.publish(TopicURLChecked, rec.NormalizedURL, event)
}

func (p *EventPublisher) PublishURLRejected(ctx context.Context,
	rec *domain.CheckRecord) error {

	event := map[string]interface{}{
		"event_type": "url_rejected",
		"timestamp":  rec.CreatedAt,
		"data": map[string]interface{}{
			"input":   rec.Input,
			"verdict": rec.Verdict,
			"reason":  rec.Reason,
		},
	}

	return p.publish(TopicURLRejected, rec.Input, event)
}

func (p *EventPublisher) publish(topic, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (p *EventPublisher) Close() error {
	return p.producer.Close()
}

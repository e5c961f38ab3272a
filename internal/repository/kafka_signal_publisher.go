package repository

import (
	"context"
	"fmt"
	"time"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	pkgkafka "SmartMoney/pkg/kafka"
)

// EventSignalsGenerated names the batch envelope event.
const EventSignalsGenerated = "signals.generated"

type batchWriter interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// SignalsGeneratedEvent is the envelope written once per batch.
type SignalsGeneratedEvent struct {
	Event         string                `json:"event"`
	GenerationID  string                `json:"generation_id"`
	TotalSignals  int                   `json:"total_signals"`
	Skipped       int                   `json:"skipped"`
	Filters       models.SignalFilter   `json:"filters"`
	MarketSummary *models.MarketSummary `json:"market_summary,omitempty"`
	Timestamp     time.Time             `json:"timestamp"`
}

// KafkaSignalPublisher writes the envelope keyed by generation id followed
// by one message per signal keyed by symbol, in a single write.
type KafkaSignalPublisher struct {
	w     batchWriter
	topic string
}

func NewKafkaSignalPublisher(p *pkgkafka.Producer, topic string) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{w: p, topic: topic}
}

func (p *KafkaSignalPublisher) PublishBatch(ctx context.Context, res *models.SignalsResult) error {
	if res == nil {
		return nil
	}
	headers := map[string]string{"generation_id": res.GenerationID}

	msgs := make([]pkgkafka.Message, 0, len(res.Signals)+1)
	msgs = append(msgs, pkgkafka.Message{
		Key: []byte(res.GenerationID),
		Value: SignalsGeneratedEvent{
			Event:         EventSignalsGenerated,
			GenerationID:  res.GenerationID,
			TotalSignals:  res.TotalSignals,
			Skipped:       res.Skipped,
			Filters:       res.Filters,
			MarketSummary: res.MarketSummary,
			Timestamp:     res.Timestamp,
		},
		Headers: map[string]string{"generation_id": res.GenerationID, "event": EventSignalsGenerated},
	})
	for _, s := range res.Signals {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(s.Symbol), Value: s, Headers: headers})
	}
	if err := p.w.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish signals %s: %w", res.GenerationID, err)
	}
	return nil
}

func (p *KafkaSignalPublisher) Close() error {
	return p.w.Close()
}

var _ domrepo.SignalPublisher = (*KafkaSignalPublisher)(nil)

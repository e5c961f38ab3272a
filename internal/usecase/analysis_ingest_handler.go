package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	pkgkafka "SmartMoney/pkg/kafka"
)

// AnalysisIngestHandler consumes option-analysis snapshots from Kafka and
// upserts them into the store.
type AnalysisIngestHandler struct {
	topic   string
	store   domrepo.AnalysisStore
	metrics domrepo.Metrics
}

func NewAnalysisIngestHandler(topic string, store domrepo.AnalysisStore, metrics domrepo.Metrics) *AnalysisIngestHandler {
	return &AnalysisIngestHandler{topic: topic, store: store, metrics: metrics}
}

func (h *AnalysisIngestHandler) Topic() string { return h.topic }

// incoming message schema: OptionAnalysis as JSON
func (h *AnalysisIngestHandler) Handle(ctx context.Context, b []byte) error {
	var a models.OptionAnalysis
	if err := json.Unmarshal(b, &a); err != nil {
		h.recordError("consumer_unmarshal")
		return fmt.Errorf("decode option analysis: %w", err)
	}
	a.Symbol = strings.ToUpper(strings.TrimSpace(a.Symbol))
	if a.Symbol == "" {
		h.recordError("consumer_validate")
		return fmt.Errorf("decode option analysis: missing symbol")
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	} else if h.metrics != nil {
		h.metrics.RecordLatency("ingest_e2e", time.Since(a.UpdatedAt).Seconds())
	}

	start := time.Now()
	err := h.store.Store(ctx, &a)
	if h.metrics != nil {
		h.metrics.RecordLatency("store_upsert", time.Since(start).Seconds())
	}
	if err != nil {
		h.recordError("consumer_store")
		return err
	}
	return nil
}

func (h *AnalysisIngestHandler) recordError(kind string) {
	if h.metrics != nil {
		h.metrics.RecordError(kind)
	}
}

var _ pkgkafka.MessageHandler = (*AnalysisIngestHandler)(nil)

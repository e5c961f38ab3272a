package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SmartMoney/internal/domain/models"
	"SmartMoney/pkg/breaker"
	pkgkafka "SmartMoney/pkg/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "analyses.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestFileSourceOrdersByScore(t *testing.T) {
	p := writeFile(t, `[
		{"symbol":"TCS","score":12,"current_price":4000},
		{"symbol":"INFY","score":55.5,"current_price":1500,"support_levels":[1480]},
		{"symbol":"SBIN","score":-20,"current_price":600}
	]`)
	src := NewFileSource(p)

	got, err := src.LatestAnalyses(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "INFY", got[0].Symbol)
	assert.Equal(t, "TCS", got[1].Symbol)
	assert.Equal(t, "SBIN", got[2].Symbol)
	assert.Equal(t, []float64{1480}, got[0].SupportLevels)

	assert.NoError(t, src.Health(context.Background()))
	assert.ErrorIs(t, src.Store(context.Background(), &models.OptionAnalysis{Symbol: "X"}), ErrReadOnly)
}

func TestFileSourceErrors(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	_, err := src.LatestAnalyses(context.Background())
	assert.Error(t, err)
	assert.Error(t, src.Health(context.Background()))

	_, err = NewFileSource(writeFile(t, `{"symbol":"TCS"}`)).LatestAnalyses(context.Background())
	assert.ErrorContains(t, err, "decode analyses file")
}

type stubStore struct {
	calls   int
	err     error
	records []models.OptionAnalysis
}

func (s *stubStore) LatestAnalyses(context.Context) ([]models.OptionAnalysis, error) {
	s.calls++
	return s.records, s.err
}
func (s *stubStore) Store(context.Context, *models.OptionAnalysis) error {
	s.calls++
	return s.err
}
func (s *stubStore) Health(context.Context) error { return s.err }
func (s *stubStore) Close() error                 { return nil }

func TestBreakerStoreOpensAfterFailures(t *testing.T) {
	next := &stubStore{err: errors.New("connection refused")}
	s := NewBreakerStore(next, breaker.Settings{MaxFailures: 2, Timeout: time.Hour}, nil)

	for i := 0; i < 2; i++ {
		_, err := s.LatestAnalyses(context.Background())
		assert.ErrorContains(t, err, "connection refused")
	}
	_, err := s.LatestAnalyses(context.Background())
	assert.ErrorIs(t, err, breaker.ErrOpen)
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, "open", s.State())

	// health is not short-circuited
	assert.ErrorContains(t, s.Health(context.Background()), "connection refused")
}

func TestBreakerStorePassesThrough(t *testing.T) {
	next := &stubStore{records: []models.OptionAnalysis{{Symbol: "TCS"}}}
	s := NewBreakerStore(next, breaker.Settings{}, nil)

	got, err := s.LatestAnalyses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, next.records, got)
	assert.NoError(t, s.Store(context.Background(), &models.OptionAnalysis{Symbol: "TCS"}))
	assert.Equal(t, "closed", s.State())
}

type captureWriter struct {
	topic string
	msgs  []pkgkafka.Message
	err   error
}

func (w *captureWriter) PublishBatch(_ context.Context, topic string, m []pkgkafka.Message) error {
	w.topic = topic
	w.msgs = m
	return w.err
}
func (w *captureWriter) Close() error { return nil }

func TestKafkaSignalPublisher(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaSignalPublisher{w: w, topic: "trading-signals"}
	res := &models.SignalsResult{
		GenerationID: "gen-1",
		Signals: []models.TradingSignal{
			{Symbol: "TCS", SignalType: models.SignalBuy},
			{Symbol: "SBIN", SignalType: models.SignalSell},
		},
		TotalSignals: 2,
		Filters:      models.DefaultFilter(),
	}

	require.NoError(t, p.PublishBatch(context.Background(), res))
	assert.Equal(t, "trading-signals", w.topic)
	require.Len(t, w.msgs, 3)

	assert.Equal(t, "gen-1", string(w.msgs[0].Key))
	env, ok := w.msgs[0].Value.(SignalsGeneratedEvent)
	require.True(t, ok)
	assert.Equal(t, EventSignalsGenerated, env.Event)
	assert.Equal(t, 2, env.TotalSignals)

	assert.Equal(t, "TCS", string(w.msgs[1].Key))
	assert.Equal(t, "SBIN", string(w.msgs[2].Key))
	assert.Equal(t, "gen-1", w.msgs[2].Headers["generation_id"])

	b, err := json.Marshal(w.msgs[1].Value)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"symbol":"TCS"`)
}

func TestKafkaSignalPublisherWrapsError(t *testing.T) {
	p := &KafkaSignalPublisher{w: &captureWriter{err: errors.New("leader not available")}, topic: "t"}
	err := p.PublishBatch(context.Background(), &models.SignalsResult{GenerationID: "g"})
	assert.ErrorContains(t, err, "leader not available")
	assert.NoError(t, p.PublishBatch(context.Background(), nil))
}

func TestNonNilSlices(t *testing.T) {
	assert.NotNil(t, nonNilFloats(nil))
	assert.NotNil(t, nonNilStrings(nil))
	assert.Equal(t, []float64{1}, nonNilFloats([]float64{1}))
}

func TestSchemasUseTableName(t *testing.T) {
	pg := &PGAnalysisStore{table: "snapshots"}
	require.Len(t, pg.Schema(), 2)
	assert.Contains(t, pg.Schema()[0], "CREATE TABLE IF NOT EXISTS snapshots")

	ch := &CHAnalysisStore{table: "smartmoney.snapshots"}
	assert.Contains(t, ch.Schema()[0], "ReplacingMergeTree(updated_at)")
	assert.Contains(t, ch.Schema()[0], "smartmoney.snapshots")
}

package usecase

import (
	"context"
	"sync"

	"SmartMoney/internal/domain/models"
)

type fakeMetrics struct {
	mu       sync.Mutex
	signals  int
	failures map[string]int
	errors   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{failures: map[string]int{}, errors: map[string]int{}}
}

func (m *fakeMetrics) RecordSignal(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals++
}

func (m *fakeMetrics) RecordSymbolFailure(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[reason]++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

type fakeStore struct {
	records []models.OptionAnalysis
	stored  []models.OptionAnalysis
	err     error
}

func (s *fakeStore) LatestAnalyses(context.Context) ([]models.OptionAnalysis, error) {
	return s.records, s.err
}

func (s *fakeStore) Store(_ context.Context, a *models.OptionAnalysis) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, *a)
	return nil
}

func (s *fakeStore) Health(context.Context) error { return s.err }

func (s *fakeStore) Close() error { return nil }

type fakePublisher struct {
	batches []*models.SignalsResult
	err     error
}

func (p *fakePublisher) PublishBatch(_ context.Context, res *models.SignalsResult) error {
	p.batches = append(p.batches, res)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

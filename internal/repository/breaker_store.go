package repository

import (
	"context"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	"SmartMoney/pkg/breaker"
	applogger "SmartMoney/pkg/logger"
)

// BreakerStore guards an AnalysisStore with a circuit breaker so a dead
// upstream fails fast instead of stacking timeouts.
type BreakerStore struct {
	next domrepo.AnalysisStore
	br   *breaker.Breaker
}

func NewBreakerStore(next domrepo.AnalysisStore, s breaker.Settings, l *applogger.Logger) *BreakerStore {
	if s.Name == "" {
		s.Name = "analysis_store"
	}
	if l != nil && s.OnStateChange == nil {
		s.OnStateChange = func(name, from, to string) {
			l.Warn("store.breaker state_change",
				applogger.String("breaker", name),
				applogger.String("from", from),
				applogger.String("to", to),
			)
		}
	}
	return &BreakerStore{next: next, br: breaker.New(s)}
}

func (s *BreakerStore) LatestAnalyses(ctx context.Context) ([]models.OptionAnalysis, error) {
	v, err := s.br.Execute(func() (any, error) {
		return s.next.LatestAnalyses(ctx)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.([]models.OptionAnalysis)
	return out, nil
}

func (s *BreakerStore) Store(ctx context.Context, a *models.OptionAnalysis) error {
	_, err := s.br.Execute(func() (any, error) {
		return nil, s.next.Store(ctx, a)
	})
	return err
}

// Health bypasses the breaker so probes see the real upstream state.
func (s *BreakerStore) Health(ctx context.Context) error {
	return s.next.Health(ctx)
}

func (s *BreakerStore) Close() error {
	return s.next.Close()
}

// State reports the breaker state.
func (s *BreakerStore) State() string {
	return s.br.State()
}

var _ domrepo.AnalysisStore = (*BreakerStore)(nil)

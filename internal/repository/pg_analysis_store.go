package repository

import (
	"context"
	"fmt"
	"time"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	applogger "SmartMoney/pkg/logger"
	pkgpg "SmartMoney/pkg/postgres"

	"github.com/jackc/pgx/v5"
)

// PGAnalysisStore implements AnalysisStore over the latest-snapshot table
// written by the option collectors. One row per symbol.
type PGAnalysisStore struct {
	client *pkgpg.Client
	table  string
	l      *applogger.Logger
}

func NewPGAnalysisStore(client *pkgpg.Client, table string) *PGAnalysisStore {
	if table == "" {
		table = "latest_option_analysis"
	}
	return &PGAnalysisStore{client: client, table: table}
}

// SetLogger injects a structured logger.
func (s *PGAnalysisStore) SetLogger(l *applogger.Logger) { s.l = l }

// Schema returns the DDL for the snapshot table.
func (s *PGAnalysisStore) Schema() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			symbol VARCHAR(32) PRIMARY KEY,
			score DOUBLE PRECISION NOT NULL DEFAULT 0,
			institutional_sentiment VARCHAR(32) NOT NULL DEFAULT '',
			overall_pcr DOUBLE PRECISION NOT NULL DEFAULT 0,
			current_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_pain DOUBLE PRECISION NOT NULL DEFAULT 0,
			support_levels DOUBLE PRECISION[] NOT NULL DEFAULT '{}',
			resistance_levels DOUBLE PRECISION[] NOT NULL DEFAULT '{}',
			net_call_buildup DOUBLE PRECISION NOT NULL DEFAULT 0,
			net_put_buildup DOUBLE PRECISION NOT NULL DEFAULT 0,
			institutional_bullish_flow DOUBLE PRECISION NOT NULL DEFAULT 0,
			institutional_bearish_flow DOUBLE PRECISION NOT NULL DEFAULT 0,
			net_institutional_flow DOUBLE PRECISION NOT NULL DEFAULT 0,
			unusual_activity TEXT[] NOT NULL DEFAULT '{}',
			strength_signals TEXT[] NOT NULL DEFAULT '{}',
			reasoning TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_score ON %s(score DESC)`, s.table, s.table),
	}
}

// InitSchema creates the snapshot table when missing.
func (s *PGAnalysisStore) InitSchema(ctx context.Context) error {
	return s.client.Migrate(ctx, s.Schema())
}

func (s *PGAnalysisStore) LatestAnalyses(ctx context.Context) ([]models.OptionAnalysis, error) {
	start := time.Now()
	q := fmt.Sprintf(`SELECT %s FROM %s ORDER BY score DESC`, analysisColumns, s.table)
	rows, err := s.client.Pool().Query(ctx, q)
	if err != nil {
		s.logError("postgres latest_analyses query error", err)
		return nil, fmt.Errorf("query latest analyses: %w", err)
	}
	defer rows.Close()

	out := make([]models.OptionAnalysis, 0, 256)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			s.logError("postgres latest_analyses scan error", err)
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		s.logError("postgres latest_analyses rows error", err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("postgres latest_analyses ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func scanAnalysis(rows pgx.Rows) (models.OptionAnalysis, error) {
	var a models.OptionAnalysis
	err := rows.Scan(
		&a.Symbol, &a.Score, &a.InstitutionalSentiment, &a.OverallPCR, &a.CurrentPrice, &a.MaxPain,
		&a.SupportLevels, &a.ResistanceLevels, &a.NetCallBuildup, &a.NetPutBuildup,
		&a.InstitutionalBullishFlow, &a.InstitutionalBearishFlow, &a.NetInstitutionalFlow,
		&a.UnusualActivity, &a.StrengthSignals, &a.Reasoning, &a.UpdatedAt,
	)
	return a, err
}

// Store upserts the snapshot for a.Symbol.
func (s *PGAnalysisStore) Store(ctx context.Context, a *models.OptionAnalysis) error {
	q := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (symbol) DO UPDATE SET
			score = EXCLUDED.score,
			institutional_sentiment = EXCLUDED.institutional_sentiment,
			overall_pcr = EXCLUDED.overall_pcr,
			current_price = EXCLUDED.current_price,
			max_pain = EXCLUDED.max_pain,
			support_levels = EXCLUDED.support_levels,
			resistance_levels = EXCLUDED.resistance_levels,
			net_call_buildup = EXCLUDED.net_call_buildup,
			net_put_buildup = EXCLUDED.net_put_buildup,
			institutional_bullish_flow = EXCLUDED.institutional_bullish_flow,
			institutional_bearish_flow = EXCLUDED.institutional_bearish_flow,
			net_institutional_flow = EXCLUDED.net_institutional_flow,
			unusual_activity = EXCLUDED.unusual_activity,
			strength_signals = EXCLUDED.strength_signals,
			reasoning = EXCLUDED.reasoning,
			updated_at = EXCLUDED.updated_at
		WHERE %s.updated_at <= EXCLUDED.updated_at`, s.table, analysisColumns, s.table)

	_, err := s.client.Pool().Exec(ctx, q,
		a.Symbol, a.Score, a.InstitutionalSentiment, a.OverallPCR, a.CurrentPrice, a.MaxPain,
		nonNilFloats(a.SupportLevels), nonNilFloats(a.ResistanceLevels), a.NetCallBuildup, a.NetPutBuildup,
		a.InstitutionalBullishFlow, a.InstitutionalBearishFlow, a.NetInstitutionalFlow,
		nonNilStrings(a.UnusualActivity), nonNilStrings(a.StrengthSignals), a.Reasoning, a.UpdatedAt.UTC(),
	)
	if err != nil {
		s.logError("postgres store_analysis error", err, applogger.String("symbol", a.Symbol))
		return fmt.Errorf("upsert analysis %s: %w", a.Symbol, err)
	}
	return nil
}

func (s *PGAnalysisStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *PGAnalysisStore) Close() error {
	return s.client.Close()
}

func (s *PGAnalysisStore) logError(msg string, err error, fields ...applogger.Field) {
	if s.l == nil {
		return
	}
	fields = append(fields, applogger.String("table", s.table), applogger.Error(err))
	s.l.Error(msg, fields...)
}

var _ domrepo.AnalysisStore = (*PGAnalysisStore)(nil)

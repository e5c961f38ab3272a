package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	pkgch "SmartMoney/pkg/clickhouse"
	applogger "SmartMoney/pkg/logger"
)

const analysisColumns = `symbol, score, institutional_sentiment, overall_pcr, current_price, max_pain,
        support_levels, resistance_levels, net_call_buildup, net_put_buildup,
        institutional_bullish_flow, institutional_bearish_flow, net_institutional_flow,
        unusual_activity, strength_signals, reasoning, updated_at`

// CHAnalysisStore implements AnalysisStore backed by a ReplacingMergeTree
// keyed by symbol, so the newest row per symbol wins after merges.
type CHAnalysisStore struct {
	client *pkgch.Client
	db     *sql.DB
	table  string
	l      *applogger.Logger
}

func NewCHAnalysisStore(ch *pkgch.Client, table string) *CHAnalysisStore {
	if table == "" {
		table = "latest_option_analysis"
	}
	return &CHAnalysisStore{client: ch, db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHAnalysisStore) SetLogger(l *applogger.Logger) { s.l = l }

// Schema returns the DDL for the snapshot table.
func (s *CHAnalysisStore) Schema() []string {
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            symbol String,
            score Float64,
            institutional_sentiment String,
            overall_pcr Float64,
            current_price Float64,
            max_pain Float64,
            support_levels Array(Float64),
            resistance_levels Array(Float64),
            net_call_buildup Float64,
            net_put_buildup Float64,
            institutional_bullish_flow Float64,
            institutional_bearish_flow Float64,
            net_institutional_flow Float64,
            unusual_activity Array(String),
            strength_signals Array(String),
            reasoning String,
            updated_at DateTime64(3, 'UTC')
        ) ENGINE = ReplacingMergeTree(updated_at)
        ORDER BY symbol
    `, s.table)}
}

// InitSchema creates the snapshot table when missing.
func (s *CHAnalysisStore) InitSchema(ctx context.Context) error {
	return s.client.InitSchema(ctx, s.Schema())
}

func (s *CHAnalysisStore) LatestAnalyses(ctx context.Context) ([]models.OptionAnalysis, error) {
	start := time.Now()
	q := fmt.Sprintf(`SELECT %s FROM %s FINAL ORDER BY score DESC`, analysisColumns, s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logError("clickhouse latest_analyses query error", err)
		return nil, fmt.Errorf("query latest analyses: %w", err)
	}
	defer rows.Close()

	out := make([]models.OptionAnalysis, 0, 256)
	for rows.Next() {
		var a models.OptionAnalysis
		if err := rows.Scan(
			&a.Symbol, &a.Score, &a.InstitutionalSentiment, &a.OverallPCR, &a.CurrentPrice, &a.MaxPain,
			&a.SupportLevels, &a.ResistanceLevels, &a.NetCallBuildup, &a.NetPutBuildup,
			&a.InstitutionalBullishFlow, &a.InstitutionalBearishFlow, &a.NetInstitutionalFlow,
			&a.UnusualActivity, &a.StrengthSignals, &a.Reasoning, &a.UpdatedAt,
		); err != nil {
			s.logError("clickhouse latest_analyses scan error", err)
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		s.logError("clickhouse latest_analyses rows error", err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_analyses ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHAnalysisStore) Store(ctx context.Context, a *models.OptionAnalysis) error {
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table, analysisColumns)
	_, err := s.db.ExecContext(ctx, q,
		a.Symbol, a.Score, a.InstitutionalSentiment, a.OverallPCR, a.CurrentPrice, a.MaxPain,
		nonNilFloats(a.SupportLevels), nonNilFloats(a.ResistanceLevels), a.NetCallBuildup, a.NetPutBuildup,
		a.InstitutionalBullishFlow, a.InstitutionalBearishFlow, a.NetInstitutionalFlow,
		nonNilStrings(a.UnusualActivity), nonNilStrings(a.StrengthSignals), a.Reasoning, a.UpdatedAt.UTC(),
	)
	if err != nil {
		s.logError("clickhouse store_analysis error", err, applogger.String("symbol", a.Symbol))
		return fmt.Errorf("insert analysis %s: %w", a.Symbol, err)
	}
	return nil
}

func (s *CHAnalysisStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *CHAnalysisStore) Close() error {
	return s.client.Close()
}

func (s *CHAnalysisStore) logError(msg string, err error, fields ...applogger.Field) {
	if s.l == nil {
		return
	}
	fields = append(fields, applogger.String("table", s.table), applogger.Error(err))
	s.l.Error(msg, fields...)
}

func nonNilFloats(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

var _ domrepo.AnalysisStore = (*CHAnalysisStore)(nil)

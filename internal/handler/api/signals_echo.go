package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SmartMoney/internal/domain/models"
	icache "SmartMoney/internal/service/cache"
	"SmartMoney/internal/service/metrics"
	"SmartMoney/internal/service/ratelimit"
	"SmartMoney/pkg/breaker"
	xhttp "SmartMoney/pkg/http"
	xlogger "SmartMoney/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	endpointSignals = "trading_signals"
	endpointHealth  = "health"
)

// SignalsService is the use case behind the signal endpoints.
type SignalsService interface {
	Generate(ctx context.Context, f models.SignalFilter) (*models.SignalsResult, error)
	Health(ctx context.Context) error
}

// SignalsEchoHandler serves generated trading signals over Echo.
type SignalsEchoHandler struct {
	logger   *xlogger.Logger
	svc      SignalsService
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
}

func NewSignalsEchoHandler(logger *xlogger.Logger, svc SignalsService) *SignalsEchoHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.NewNop()
	}
	return &SignalsEchoHandler{logger: logger, svc: svc}
}

// SetCache enables response caching; ttl <= 0 disables it.
func (h *SignalsEchoHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	if ttl <= 0 {
		c = nil
	}
	h.cache = c
	h.cacheTTL = ttl
}

// SetRateLimiter limits requests per client IP.
func (h *SignalsEchoHandler) SetRateLimiter(rl *ratelimit.Limiter) { h.rl = rl }

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/trading-signals", h.TradingSignals)
	g.GET("/health", h.Health)
}

func cacheKey(f models.SignalFilter) string {
	return fmt.Sprintf("signals:%s:%d:%s:%d", f.SignalType, f.MinConfidence, f.Timeframe, f.Limit)
}

func (h *SignalsEchoHandler) TradingSignals(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.EndpointLatency.WithLabelValues(endpointSignals).Observe(time.Since(start).Seconds())
	}()

	if h.rl != nil && !h.rl.Allow(c.RealIP()) {
		metrics.EndpointErrors.WithLabelValues(endpointSignals).Inc()
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
	}

	req := &models.TradingSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	f := req.Filter()
	ctx := c.Request().Context()
	key := cacheKey(f)

	if h.cache != nil {
		b, ok, err := h.cache.GetBytes(ctx, key)
		if err != nil {
			h.logger.Warn("signals.api cache_get failed", xlogger.String("key", key), xlogger.Error(err))
		}
		if ok {
			metrics.CacheHits.WithLabelValues(endpointSignals).Inc()
			c.Response().Header().Set("X-Cache", "HIT")
			return xhttp.SuccessResponse(c, json.RawMessage(b))
		}
	}

	res, err := h.svc.Generate(ctx, f)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpointSignals).Inc()
		h.logger.Error("signals.api generate failed", xlogger.Error(err))
		if errors.Is(err, breaker.ErrOpen) {
			return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("option analysis source unavailable").WithError(err))
		}
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to generate trading signals").WithError(err))
	}

	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(ctx, key, b, h.cacheTTL); err != nil {
				h.logger.Warn("signals.api cache_set failed", xlogger.String("key", key), xlogger.Error(err))
			}
		}
		c.Response().Header().Set("X-Cache", "MISS")
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Health(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.EndpointLatency.WithLabelValues(endpointHealth).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()
	if err := h.svc.Health(ctx); err != nil {
		metrics.EndpointErrors.WithLabelValues(endpointHealth).Inc()
		h.logger.Warn("signals.api health failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("store unreachable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

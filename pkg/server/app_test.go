package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"SmartMoney/pkg/config"
	xhttp "SmartMoney/pkg/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okHandler struct{}

func (okHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", func(c echo.Context) error { return xhttp.SuccessResponse(c, "ok") })
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestAppRunStopsOnContextCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = freePort(t)
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Source.Type = config.SourceFile

	reg := prometheus.NewRegistry()
	srv := xhttp.NewServer([]xhttp.Handler{okHandler{}},
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithMetrics("", reg, reg),
	)
	app := New(cfg, nil, srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(cfg.Server.Port) + "/api/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

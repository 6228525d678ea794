package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/sipcalc/internal/sip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s := New(Config{
		AllowedOrigins: []string{"http://localhost:5173"},
		Logger:         NewLogger(&logs, "http"),
		ChartWidth:     480,
		ChartHeight:    320,
	})
	return s, &logs
}

func get(t *testing.T, s *Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestService(t)
	rec := get(t, s, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProjection_Defaults(t *testing.T) {
	s, _ := newTestService(t)
	rec := get(t, s, "/v1/projection")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var p sip.Projection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 5000.0, p.Params.Monthly)
	assert.Equal(t, 15, p.Params.Years)
	assert.Len(t, p.Series, 16*len(sip.DefaultRates))
	assert.Equal(t, 900_000.0, p.TotalInvested)
	assert.Equal(t, "8%", p.Series[0].Label)
}

func TestProjection_Query(t *testing.T) {
	s, _ := newTestService(t)
	rec := get(t, s, "/v1/projection?monthly=1000&years=1&rates=12")
	require.Equal(t, http.StatusOK, rec.Code)

	var p sip.Projection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Series, 2)
	assert.InDelta(t, 12_809, p.Series[1].Amount, 1)
	assert.Equal(t, 12_000.0, p.TotalInvested)
}

func TestProjection_SeriesJSONShape(t *testing.T) {
	s, _ := newTestService(t)
	rec := get(t, s, "/v1/projection?years=1&rates=8")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, k := range []string{"params", "series", "total_invested"} {
		assert.Contains(t, raw, k)
	}
	first := raw["series"].([]any)[0].(map[string]any)
	for _, k := range []string{"year", "rate", "rate_label", "amount"} {
		assert.Contains(t, first, k)
	}
}

func TestProjection_ValidationErrors(t *testing.T) {
	tests := []struct {
		query string
		code  string
	}{
		{"monthly=abc", "invalid_contribution"},
		{"monthly=-5", "invalid_contribution"},
		{"monthly=300", "invalid_contribution"},
		{"monthly=750", "invalid_contribution"},
		{"years=0", "invalid_duration"},
		{"years=41", "invalid_duration"},
		{"years=2.5", "invalid_duration"},
		{"years=ten", "invalid_duration"},
		{"rates=abc", "invalid_rate"},
		{"rates=0", "invalid_rate"},
		{"rates=8,8", "invalid_rate"},
	}
	s, _ := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/v1/projection?"+tt.query)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestFinal(t *testing.T) {
	s, _ := newTestService(t)
	rec := get(t, s, "/v1/projection/final?currency=$")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FinalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, len(sip.DefaultRates))
	assert.Equal(t, "$900,000", resp.InvestedDisplay)

	row := resp.Rows[2]
	assert.Equal(t, "12%", row.Label)
	assert.Equal(t, "$2,522,880", row.AmountDisplay)
	assert.Equal(t, "$1,622,880", row.GainDisplay)
	assert.Equal(t, "2.80x", row.Multiple)
}

func TestChart(t *testing.T) {
	s, _ := newTestService(t)

	rec := get(t, s, "/v1/chart.png?years=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = get(t, s, "/v1/chart.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = get(t, s, "/v1/chart.svg?years=99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	s, _ := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	s, logs := newTestService(t)
	get(t, s, "/v1/projection?years=0")

	out := logs.String()
	assert.Contains(t, out, "component=http")
	assert.Contains(t, out, "path=/v1/projection")
	assert.Contains(t, out, "status=400")
	assert.True(t, strings.Contains(out, "level=WARN"), "4xx should log at warn: %s", out)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestService(t)
	rec := get(t, s, "/v2/anything")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_SanitizesDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		monthly float64
		years   int
		rates   int
	}{
		{"years above range", Config{Years: 99}, 5000, sip.MaxYears, len(sip.DefaultRates)},
		{"negative years", Config{Years: -3}, 5000, 15, len(sip.DefaultRates)},
		{"off step monthly", Config{Monthly: 750}, 5000, 15, len(sip.DefaultRates)},
		{"duplicate rates", Config{Rates: []float64{10, 10}}, 5000, 15, len(sip.DefaultRates)},
		{"valid values kept", Config{Monthly: 1500, Years: 7, Rates: []float64{9}}, 1500, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, New(tt.cfg), "/v1/projection")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var p sip.Projection
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Equal(t, tt.monthly, p.Params.Monthly)
			assert.Equal(t, tt.years, p.Params.Years)
			assert.Len(t, p.Params.Rates, tt.rates)
		})
	}
}

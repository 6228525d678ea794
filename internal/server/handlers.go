package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/plot"
	"github.com/theirongolddev/sipcalc/internal/sip"
)

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FinalRow is one rate's outcome at the end of the horizon.
type FinalRow struct {
	Rate          float64 `json:"rate"`
	Label         string  `json:"rate_label"`
	Amount        float64 `json:"amount"`
	Gain          float64 `json:"gain"`
	AmountDisplay string  `json:"amount_display"`
	GainDisplay   string  `json:"gain_display"`
	Multiple      string  `json:"multiple"`
}

// FinalResponse is served at /v1/projection/final.
type FinalResponse struct {
	Params          sip.Params `json:"params"`
	TotalInvested   float64    `json:"total_invested"`
	InvestedDisplay string     `json:"invested_display"`
	Rows            []FinalRow `json:"rows"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleProjection(w http.ResponseWriter, r *http.Request) {
	p, err := s.project(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleFinal(w http.ResponseWriter, r *http.Request) {
	p, err := s.project(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sym := s.currency(r)
	resp := FinalResponse{
		Params:          p.Params,
		TotalInvested:   p.TotalInvested,
		InvestedDisplay: cli.FormatCurrency(p.TotalInvested, sym),
	}
	for _, pt := range p.FinalYear() {
		gain := p.Gain(pt)
		resp.Rows = append(resp.Rows, FinalRow{
			Rate:          pt.Rate,
			Label:         pt.Label,
			Amount:        pt.Amount,
			Gain:          gain,
			AmountDisplay: cli.FormatCurrency(pt.Amount, sym),
			GainDisplay:   cli.FormatCurrency(gain, sym),
			Multiple:      cli.FormatMultiple(pt.Amount, p.TotalInvested),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleChart(format plot.Format) http.HandlerFunc {
	contentType := "image/png"
	if format == plot.SVG {
		contentType = "image/svg+xml"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.project(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		// Render into a buffer so a failure can still become a JSON error.
		var buf bytes.Buffer
		err = plot.Render(&buf, p, plot.Options{
			Format:   format,
			Width:    s.cfg.ChartWidth,
			Height:   s.cfg.ChartHeight,
			Currency: s.currency(r),
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = w.Write(buf.Bytes())
	}
}

// project builds a projection from query parameters, falling back to the
// service defaults for any that are absent.
func (s *Service) project(r *http.Request) (sip.Projection, error) {
	q := r.URL.Query()

	monthly := s.cfg.Monthly
	if v := q.Get("monthly"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sip.Projection{}, fmtQueryErr(sip.ErrInvalidContribution, "monthly", v)
		}
		monthly = m
	}
	if err := sip.CheckContribution(monthly); err != nil {
		return sip.Projection{}, err
	}

	years := s.cfg.Years
	if v := q.Get("years"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sip.Projection{}, fmtQueryErr(sip.ErrInvalidDuration, "years", v)
		}
		if years, err = sip.WholeYears(f); err != nil {
			return sip.Projection{}, err
		}
	}

	rates := s.cfg.Rates
	if v := q.Get("rates"); v != "" {
		parsed, err := sip.ParseRates(v)
		if err != nil {
			return sip.Projection{}, err
		}
		rates = parsed
	}

	return sip.Project(monthly, years, rates)
}

func (s *Service) currency(r *http.Request) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return c
	}
	return s.cfg.Currency
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if sip.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: sip.ErrorCode(err)})
		return
	}
	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func fmtQueryErr(sentinel error, name, value string) error {
	return fmt.Errorf("%w: %s=%q is not a number", sentinel, name, value)
}

package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/theirongolddev/sipcalc/internal/sip"
)

func TestWriteScheduleCSV(t *testing.T) {
	proj, err := sip.Project(1000, 1, []float64{12})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	var buf bytes.Buffer
	if err := writeScheduleCSV(&buf, proj); err != nil {
		t.Fatalf("writeScheduleCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 years", len(records))
	}
	if got := records[0]; len(got) != 3 || got[0] != "Year" || got[2] != "12%" {
		t.Errorf("header = %v", got)
	}
	if got := records[1]; got[0] != "0" || got[1] != "0.00" || got[2] != "0.00" {
		t.Errorf("year 0 row = %v", got)
	}
	if got := records[2]; got[1] != "12000.00" || got[2][:6] != "12809." {
		t.Errorf("year 1 row = %v", got)
	}
}

func TestWriteScheduleJSON(t *testing.T) {
	proj, err := sip.ProjectDefault(5000, 15)
	if err != nil {
		t.Fatalf("ProjectDefault: %v", err)
	}

	var buf bytes.Buffer
	if err := writeScheduleJSON(&buf, proj); err != nil {
		t.Fatalf("writeScheduleJSON: %v", err)
	}

	var got struct {
		Params struct {
			Years int `json:"years"`
		} `json:"params"`
		Series        []map[string]any `json:"series"`
		TotalInvested float64          `json:"total_invested"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Params.Years != 15 {
		t.Errorf("years = %d, want 15", got.Params.Years)
	}
	if want := 16 * len(sip.DefaultRates); len(got.Series) != want {
		t.Errorf("series len = %d, want %d", len(got.Series), want)
	}
	if got.TotalInvested != 900000 {
		t.Errorf("total_invested = %v, want 900000", got.TotalInvested)
	}
}

func TestMoney(t *testing.T) {
	if got := money(2522880.456); got != "2522880.46" {
		t.Errorf("money = %q", got)
	}
}

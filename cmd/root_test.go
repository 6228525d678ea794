package cmd

import (
	"errors"
	"os"
	"testing"

	"github.com/theirongolddev/sipcalc/internal/config"
	"github.com/theirongolddev/sipcalc/internal/sip"

	"github.com/spf13/pflag"
)

// isolateConfig points the config directory at a temp dir and clears overrides.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvMonthly, config.EnvYears, config.EnvCurrency, config.EnvAddr} {
		t.Setenv(k, "")
	}
}

func writeConfigFile(t *testing.T, body string) {
	t.Helper()
	if err := os.MkdirAll(config.Dir(), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(config.Path(), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("sipcalc", pflag.ContinueOnError)
	addParamFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return fs
}

func resolveWith(t *testing.T, args ...string) (params, error) {
	t.Helper()
	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	return resolve(cfg, parseFlags(t, args...))
}

func TestResolve_Defaults(t *testing.T) {
	isolateConfig(t)

	p, err := resolveWith(t)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.monthly != 5000 || p.years != 15 || p.currency != "₹" {
		t.Errorf("params = %+v, want 5000/15/₹", p)
	}
	if len(p.rates) != len(sip.DefaultRates) {
		t.Errorf("rates = %v, want %v", p.rates, sip.DefaultRates)
	}
}

func TestResolve_Precedence(t *testing.T) {
	isolateConfig(t)
	writeConfigFile(t, "[general]\nmonthly_contribution = 2000\nyears = 20\ncurrency = \"$\"\n")
	t.Setenv(config.EnvMonthly, "2500")
	t.Setenv(config.EnvYears, "22")

	tests := []struct {
		name     string
		args     []string
		monthly  float64
		years    int
		currency string
	}{
		{"env over file", nil, 2500, 22, "$"},
		{"flag over env", []string{"--monthly", "3000", "-y", "25"}, 3000, 25, "$"},
		{"flag over file", []string{"--currency", "€"}, 2500, 22, "€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolveWith(t, tt.args...)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if p.monthly != tt.monthly || p.years != tt.years || p.currency != tt.currency {
				t.Errorf("got %v/%d/%s, want %v/%d/%s",
					p.monthly, p.years, p.currency, tt.monthly, tt.years, tt.currency)
			}
		})
	}
}

func TestResolve_FileOverDefault(t *testing.T) {
	isolateConfig(t)
	writeConfigFile(t, "[general]\nyears = 30\n")

	p, err := resolveWith(t)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.years != 30 || p.monthly != 5000 {
		t.Errorf("params = %+v, want years 30 from file and default monthly", p)
	}
}

func TestResolve_Rates(t *testing.T) {
	isolateConfig(t)

	p, err := resolveWith(t, "-r", "6, 9.5%,12")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []float64{6, 9.5, 12}
	if len(p.rates) != len(want) {
		t.Fatalf("rates = %v, want %v", p.rates, want)
	}
	for i := range want {
		if p.rates[i] != want[i] {
			t.Errorf("rates[%d] = %v, want %v", i, p.rates[i], want[i])
		}
	}
}

func TestResolve_Rejects(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"off step", []string{"--monthly", "750"}, sip.ErrOffStep},
		{"below minimum", []string{"--monthly", "400"}, sip.ErrBelowMinimum},
		{"zero", []string{"--monthly", "0"}, sip.ErrInvalidContribution},
		{"too many years", []string{"--years", "41"}, sip.ErrInvalidDuration},
		{"zero years", []string{"--years", "0"}, sip.ErrInvalidDuration},
		{"bad rate", []string{"--rates", "8,ten"}, sip.ErrInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveWith(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolve_RejectsBadConfigValue(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvMonthly, "750")

	if _, err := resolveWith(t); !errors.Is(err, sip.ErrOffStep) {
		t.Errorf("err = %v, want %v", err, sip.ErrOffStep)
	}
}

func TestLoadConfig_KeepsEnvOutOfFileConfig(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvAddr, "0.0.0.0:9999")

	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9999" {
		t.Errorf("effective addr = %q, want env value", cfg.Server.Addr)
	}
	if fileCfg.Server.Addr != "127.0.0.1:8787" {
		t.Errorf("file addr = %q, want default", fileCfg.Server.Addr)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/sipcalc/internal/config"
	"github.com/theirongolddev/sipcalc/internal/sip"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flagQuiet bool

var (
	// fileCfg is the config file as stored. Commands that save start from it.
	fileCfg config.Config
	// cfg is fileCfg with environment overrides applied.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sipcalc",
	Short: "SIP growth projection calculator",
	Long: "Project the future value of a monthly systematic investment plan\n" +
		"across several annual return rates.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		config.LoadDotEnv()
		return loadConfig()
	},
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	addParamFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress status output")
}

// addParamFlags defines the projection parameter flags.
func addParamFlags(fs *pflag.FlagSet) {
	fs.Float64P("monthly", "m", 0, "Monthly contribution (default from config, 5000)")
	fs.IntP("years", "y", 0, "Investment duration in years (default from config, 15)")
	fs.StringP("rates", "r", "", "Comma separated annual rates in percent (default 8,10,12,14,18)")
	fs.String("currency", "", "Currency symbol (default from config, ₹)")
}

// loadConfig reads the config file and derives the effective config.
func loadConfig() error {
	var err error
	fileCfg, err = config.LoadFile()
	if err != nil {
		return err
	}
	cfg = fileCfg
	return config.ApplyEnv(&cfg)
}

// params are the projection inputs after flag, env and config resolution.
type params struct {
	monthly  float64
	years    int
	rates    []float64
	currency string
}

// resolveParams applies the command's flags over the effective config.
func resolveParams(cmd *cobra.Command) (params, error) {
	return resolve(cfg, cmd.Flags())
}

// resolve picks each parameter from a set flag, else from c (which already
// carries env and file values), and validates the result with the same rules
// the dashboard and API use.
func resolve(c config.Config, flags *pflag.FlagSet) (params, error) {
	p := params{
		monthly:  c.General.MonthlyContribution,
		years:    c.General.Years,
		currency: c.General.Currency,
	}
	var err error
	if flags.Changed("monthly") {
		if p.monthly, err = flags.GetFloat64("monthly"); err != nil {
			return p, err
		}
	}
	if flags.Changed("years") {
		if p.years, err = flags.GetInt("years"); err != nil {
			return p, err
		}
	}
	if flags.Changed("currency") {
		if p.currency, err = flags.GetString("currency"); err != nil {
			return p, err
		}
	}
	rates, err := flags.GetString("rates")
	if err != nil {
		return p, err
	}

	if err := sip.CheckContribution(p.monthly); err != nil {
		return p, fmt.Errorf("monthly contribution: %w", err)
	}
	if p.years, err = sip.WholeYears(float64(p.years)); err != nil {
		return p, err
	}
	if p.rates, err = sip.ParseRates(rates); err != nil {
		return p, err
	}
	return p, nil
}

// project resolves the parameters and runs the projection.
func project(cmd *cobra.Command) (sip.Projection, params, error) {
	p, err := resolveParams(cmd)
	if err != nil {
		return sip.Projection{}, p, err
	}
	proj, err := sip.Project(p.monthly, p.years, p.rates)
	if err != nil {
		return sip.Projection{}, p, err
	}
	return proj, p, nil
}

// status writes a progress line to stderr unless --quiet is set.
func status(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

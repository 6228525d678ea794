package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/sipcalc/internal/server"

	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve projections over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8787)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	p, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := server.New(server.Config{
		Addr:           addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Monthly:        p.monthly,
		Years:          p.years,
		Rates:          p.rates,
		Currency:       p.currency,
		ChartWidth:     cfg.Chart.Width,
		ChartHeight:    cfg.Chart.Height,
		Logger:         server.NewLogger(os.Stderr, "http"),
	})

	status("Serving projections on http://%s (Ctrl+C to stop)", addr)
	return svc.Run(ctx)
}

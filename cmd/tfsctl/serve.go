package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tfs-go/tfs/tfs"
)

var (
	metricsAddr string
	logLevel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a long-running filesystem instance exposing Prometheus metrics",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9401", "address to serve /metrics on")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "diagnostic log verbosity (info or debug)")
	_ = viper.BindPFlag("metrics-addr", serveCmd.Flags().Lookup("metrics-addr"))
	_ = viper.BindPFlag("log-level", serveCmd.Flags().Lookup("log-level"))
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := viper.GetString("metrics-addr")

	metrics := tfs.NewMetrics()
	fs, err := tfs.New(tfs.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("tfs.New: %w", err)
	}
	defer fs.Close()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	log.Printf("[ tfs_serve ] listening on %s (log-level=%s)\n", addr, viper.GetString("log-level"))
	return http.ListenAndServe(addr, mux)
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omicsops/samplectl/internal/server"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve sheet validation over HTTP",
	Long: `Run a small HTTP service for CI jobs and editors that want sheet
validation without a local samplectl install.

Endpoints:
  POST /v1/validate    validate a YAML sheet in the request body
  GET  /v1/vocab       all tool vocabularies
  GET  /v1/vocab/{key} vocabulary for one algorithm key
  GET  /healthz        liveness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.New(serveListen)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sig:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

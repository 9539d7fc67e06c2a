package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindgraphix/platform/internal/gateway"
	"github.com/mindgraphix/platform/internal/transport"
	"github.com/mindgraphix/platform/pkg/logger"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the API gateway",
	Long:  `Start the edge proxy that routes /api/{service}/* requests to the configured upstreams`,
	Run: func(cmd *cobra.Command, args []string) {
		startGateway()
	},
}

func startGateway() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.L()

	proxy := gateway.NewProxy(
		transport.NewBaseHandler(lg),
		config.Gateway.Upstreams(),
		config.Gateway.UpstreamTimeout,
		lg,
	)

	addr := fmt.Sprintf(":%d", config.Gateway.Port)
	lg.Info("starting gateway", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      proxy.Routes(),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("received signal, shutting down gateway", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.Error("gateway shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			lg.Error("gateway failed to start", "error", err)
			os.Exit(1)
		}
	}

	lg.Info("gateway stopped")
}

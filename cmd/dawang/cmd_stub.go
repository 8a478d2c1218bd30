package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dawang/internal/stubserver"
)

var (
	stubAddr string
	stubFail bool
)

// stubCmd serves the local stand-in for the advisory service
var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve a local stand-in for the advisory service",
	Long: `Serves the advisory service's JSON API with canned answers so the client
can be exercised without the real backend. Answers are templated from the
question's topic; nothing is sent to a language model.`,
	Args: cobra.NoArgs,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().StringVar(&stubAddr, "addr", ":8000", "Listen address")
	stubCmd.Flags().BoolVar(&stubFail, "fail", false, "Answer every /api route with 500 to exercise client error paths")
}

func runStub(cmd *cobra.Command, args []string) error {
	stub := stubserver.New(logger)
	stub.SetFailing(stubFail)

	srv := &http.Server{
		Addr:         stubAddr,
		Handler:      stub.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Stub server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down stub server", zap.Int("questions", stub.Asked()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

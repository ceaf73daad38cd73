package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neboloop/fsgate/internal/fsops"
	"github.com/neboloop/fsgate/internal/logging"
	"github.com/neboloop/fsgate/internal/mcp"
	"github.com/neboloop/fsgate/internal/sandbox"
)

// ServeCmd starts the MCP server
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	cmd.Flags().BoolVar(&useHTTP, "http", false, "serve MCP over streamable HTTP instead of stdio")
	cmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (default from config host:port)")
	return cmd
}

func runServe() error {
	guard, err := sandbox.NewGuard(ServerConfig.AllowedDirs)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(fsops.New(guard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if !useHTTP {
		// stdout belongs to the stdio transport
		logging.Disable()
		return srv.Run(ctx)
	}

	addr := httpAddr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", ServerConfig.Host, ServerConfig.Port)
	}
	if len(guard.Roots()) == 0 {
		logging.Warnf("no allowed directories configured; every operation will be denied")
	}
	logging.Infof("fsgate listening on %s (%d allowed roots)", addr, len(guard.Roots()))

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

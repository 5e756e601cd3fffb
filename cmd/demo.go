package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/eora-ai/eora/internal/api"
	"github.com/eora-ai/eora/internal/config"
	"github.com/eora-ai/eora/internal/demo"
	"github.com/eora-ai/eora/internal/logger"
)

var (
	demoAddr      string
	demoEmpty     bool
	demoServeOnly bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the TUI against a built-in fake backend",
	Long: `Start an in-memory backend with a few sample sessions and open the TUI
against it. Nothing touches your real server or config file.

With --serve-only the backend runs alone, which is handy for pointing
other commands at it with --server.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoAddr, "addr", "127.0.0.1:0", "Listen address for the fake backend")
	demoCmd.Flags().BoolVar(&demoEmpty, "empty", false, "Start without sample sessions")
	demoCmd.Flags().BoolVar(&demoServeOnly, "serve-only", false, "Run the backend without the TUI")
	rootCmd.AddCommand(demoCmd)
}

// startDemoServer serves a demo store on addr and returns its base URL.
func startDemoServer(addr string, store *demo.Store) (*http.Server, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("error listening on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           demo.NewHandler(store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithComponent("demo").Error("demo server stopped", "error", err)
		}
	}()
	return srv, "http://" + ln.Addr().String(), nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	defer logger.Close()

	store := demo.NewStore()
	if !demoEmpty {
		store.Seed(time.Now())
	}

	srv, url, err := startDemoServer(demoAddr, store)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	if demoServeOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "demo backend listening on %s\n", url)
		<-cmd.Context().Done()
		return nil
	}

	// In-memory config: the demo must not overwrite the real current session.
	cfg := config.New("")
	cfg.OverrideServerURL(url)
	return runApp(cfg, api.New(url, api.WithUserAgent("eora/"+version)))
}

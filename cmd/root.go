package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/eora-ai/eora/internal/api"
	"github.com/eora-ai/eora/internal/app"
	"github.com/eora-ai/eora/internal/config"
	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	notifyMode            bool
	serverURL             string
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "eora",
	Short: "Terminal client for EORA AI chat sessions",
	Long: `eora is a terminal client for the EORA AI chat backend.

Without a subcommand it opens the TUI: the session list on the left, the
active conversation on the right. The sessions and points subcommands do the
same work without a terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.RunE = runTUI
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend base URL (overrides config and EORA_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.eora/config.json)")
	rootCmd.PersistentFlags().BoolVar(&notifyMode, "notify", false, "Turn desktop notifications on or off and remember the choice")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command. Ctrl+C cancels the command's context.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("eora %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("eora %s\n", version)
}

// loadConfig reads the config file and applies the --server and --notify flags.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath, ".env")
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if serverURL != "" {
		cfg.OverrideServerURL(serverURL)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if rootCmd.PersistentFlags().Changed("notify") {
		cfg.SetNotificationsEnabled(notifyMode)
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newBackend returns a client for the configured server.
func newBackend(cfg *config.Config) *api.Client {
	return api.New(cfg.GetServerURL(),
		api.WithTimeout(cfg.GetRequestTimeout()),
		api.WithUserAgent("eora/"+version),
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	return runApp(cfg, newBackend(cfg))
}

// runApp runs the TUI against backend until the user quits.
func runApp(cfg *config.Config, backend controller.Backend) error {
	logger.WithComponent("cmd").Info("starting TUI", "version", version, "server", cfg.GetServerURL())

	m := app.New(cfg, backend, version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

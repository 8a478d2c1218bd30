package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dawang/cmd/dawang/chat"
	"dawang/internal/advisor"
	"dawang/internal/config"
	"dawang/internal/emotion"
	"dawang/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string
	timeout    time.Duration

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dawang",
	Short: "다왕이 - multi-major advisory chatbot for the terminal",
	Long: `다왕이 walks you through picking a program type, your home department and a
convergence program, then answers questions about it using the advisory service.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			return fmt.Errorf("failed to initialize category logging: %w", err)
		}
		logging.Boot("Config resolved: service=%s catalog=%s", cfg.Service.BaseURL, cfg.Catalog.Source)
		logging.BootDebug("Running %q (revert_after=%s cancel_superseded=%t theme=%q)",
			cmd.CommandPath(), cfg.GetRevertAfter(), cfg.Emotion.CancelSuperseded, cfg.UI.Theme)

		// The interactive UI owns stdout; only subcommands get a console logger.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .dawang/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Advisory service base URL (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (overrides config)")

	rootCmd.AddCommand(askCmd, programsCmd, routeCmd, healthCmd, stubCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		c.Service.BaseURL = apiURL
	}
	if timeout > 0 {
		c.Service.Timeout = timeout.String()
	}
	if verbose {
		c.Logging.DebugMode = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newClient() *advisor.Client {
	return advisor.New(cfg.Service.BaseURL, cfg.GetServiceTimeout())
}

func newTimer() *emotion.Timer {
	policy := emotion.RevertAlways
	if cfg.Emotion.CancelSuperseded {
		policy = emotion.RevertLatestOnly
	}
	return emotion.NewTimer(emotion.Options{
		RevertAfter: cfg.GetRevertAfter(),
		Policy:      policy,
	})
}

func runInteractiveChat() error {
	return chat.RunInteractiveChat(chat.Config{
		Service:             newClient(),
		Timer:               newTimer(),
		UseAvailable:        cfg.Catalog.Source == config.CatalogSourceAvailable,
		PlaceholderInterval: cfg.GetPlaceholderInterval(),
		Theme:               cfg.UI.Theme,
	})
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

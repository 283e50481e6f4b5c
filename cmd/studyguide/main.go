package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyguide/cmd/studyguide/tui"
	"studyguide/cmd/studyguide/ui"
	"studyguide/internal/analysis"
	"studyguide/internal/config"
	"studyguide/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string
	mode       string
	timeout    time.Duration

	// Interactive flags
	url1      string
	url2      string
	submitNow bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "studyguide",
	Short: "studyguide - compare two videos and study the result",
	Long: `studyguide sends two YouTube URLs to the analysis backend and turns the
comparison into an interactive study guide: a combined summary, comparative
insights, key takeaways, a quiz with an answer key, difficulty-based questions
and final learning notes.

Run without arguments to start the interactive terminal client.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive client owns the terminal; it logs to files only.
		if !cmd.HasParent() {
			return nil
		}

		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
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
	RunE: runInteractive,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Analysis backend URL for the active mode (or set STUDYGUIDE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "Backend mode: development or production")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 = none)")

	// Interactive flags
	rootCmd.Flags().StringVar(&url1, "url1", "", "Prefill Video Source 1")
	rootCmd.Flags().StringVar(&url2, "url2", "", "Prefill Video Source 2")
	rootCmd.Flags().BoolVar(&submitNow, "submit", false, "Generate the comparison at startup when both URLs are set")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(stubCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: .env, the config file,
// environment overrides, then flags. requireBackend makes a missing backend
// URL an error.
func loadConfig(requireBackend bool) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if mode != "" {
		cfg.API.Mode = mode
	}
	if apiURL != "" {
		if cfg.IsDevelopment() {
			cfg.API.DevBaseURL = apiURL
		} else {
			cfg.API.BaseURL = apiURL
		}
	}
	if timeout > 0 {
		cfg.API.Timeout = timeout.String()
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	noBackend := false
	if err := cfg.Validate(); err != nil {
		if requireBackend || !errors.Is(err, config.ErrNoBaseURL) {
			return nil, err
		}
		noBackend = true
	}
	if err := logging.Initialize(cfg.Logging.Dir, cfg.Logging.Settings()); err != nil {
		return nil, err
	}
	if noBackend {
		logging.BootWarn("no backend URL configured for %s mode", cfg.API.Mode)
	}
	logging.Boot("config loaded from %s (mode %s, backend %s)", configPath, cfg.API.Mode, cfg.BaseURL())
	return cfg, nil
}

// newClient builds the backend client for cfg.
func newClient(cfg *config.Config) *analysis.Client {
	opts := []analysis.Option{analysis.WithTimeout(cfg.GetTimeout())}
	if cfg.API.UserAgent != "" {
		opts = append(opts, analysis.WithUserAgent(cfg.API.UserAgent))
	}
	return analysis.NewClient(cfg.BaseURL(), opts...)
}

// markdownStyle picks the glamour style. Auto resolves through the theme so
// glamour never queries the terminal from inside the alt screen.
func markdownStyle(cfg *config.Config) string {
	if cfg.UI.MarkdownStyle == "" || cfg.UI.MarkdownStyle == ui.StyleAuto {
		return ""
	}
	return cfg.UI.MarkdownStyle
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runInteractive starts the terminal client.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	client := newClient(cfg)
	defer client.CloseIdleConnections()

	ctx := commandContext(cmd)
	model := tui.New(ctx, client, tui.Options{
		URL1:          url1,
		URL2:          url2,
		AutoSubmit:    submitNow,
		Dark:          cfg.UI.DarkMode(ui.DetectDark),
		MarkdownStyle: markdownStyle(cfg),
		MaxWidth:      cfg.UI.Width,
	})
	logging.UI("starting interactive client against %s", client.BaseURL())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("interactive client failed: %w", err)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyguide/internal/config"
	"studyguide/internal/stub"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	stubAddr       string
	stubFixture    string
	stubWatch      bool
	stubFailStatus int
	stubDelay      time.Duration
)

// stubCmd runs a local stand-in for the analysis backend
var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run the development stub backend",
	Long: `Serves GET / and POST /api/analyze on the development address with a fixture
analysis. Requests with URLs that carry no YouTube video id are rejected the
same way the real backend rejects them.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runStub,
}

func init() {
	stubCmd.Flags().StringVar(&stubAddr, "addr", "", "Listen address (default from config, :5000)")
	stubCmd.Flags().StringVar(&stubFixture, "fixture", "", "Analysis JSON to serve (default: embedded sample)")
	stubCmd.Flags().BoolVar(&stubWatch, "watch", false, "Reload the fixture when it changes")
	stubCmd.Flags().IntVar(&stubFailStatus, "fail-status", 0, "Answer every analysis request with this status")
	stubCmd.Flags().DurationVar(&stubDelay, "delay", 0, "Artificial latency per analysis request")
}

func runStub(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if stubAddr != "" {
		cfg.Stub.Addr = stubAddr
	}
	if stubFixture != "" {
		cfg.Stub.Fixture = stubFixture
	}
	if stubWatch {
		cfg.Stub.Watch = true
	}
	if stubFailStatus != 0 {
		cfg.Stub.FailStatus = stubFailStatus
	}
	if stubDelay > 0 {
		cfg.Stub.Delay = stubDelay.String()
	}
	if err := cfg.Validate(); err != nil && !errors.Is(err, config.ErrNoBaseURL) {
		return err
	}

	s := stub.New(
		stub.WithLogger(logger),
		stub.WithDelay(cfg.GetStubDelay()),
		stub.WithFailStatus(cfg.Stub.FailStatus),
	)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	return stub.Run(ctx, cfg.Stub.Addr, s, stub.RunOptions{
		FixturePath: cfg.Stub.Fixture,
		Watch:       cfg.Stub.Watch,
		Ready: func(addr string) {
			logger.Info("stub backend listening", zap.String("addr", addr),
				zap.String("fixture", cfg.Stub.Fixture), zap.Bool("watch", cfg.Stub.Watch))
			fmt.Fprintf(out, "Stub backend listening on http://%s\n", addr)
		},
	})
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"studyguide/cmd/studyguide/ui"
	"studyguide/internal/analysis"
	"studyguide/internal/export"
	"studyguide/internal/guide"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeRaw    bool
	analyzeJSON   bool
	analyzeExport string
)

// defaultRenderWidth is the wrap width for headless output.
const defaultRenderWidth = 100

// analyzeCmd runs one comparison without the interactive client
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url1> <url2>",
	Short: "Compare two videos and print the study guide",
	Long: `Sends one analysis request and prints the resulting study guide with every
section expanded. Quiz answers stay hidden in the Knowledge Check and are listed
in the Answer Key.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "Print plain markdown instead of rendering it")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "Also write the guide to an .xlsx workbook")
	analyzeCmd.MarkFlagsMutuallyExclusive("raw", "json")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	client := newClient(cfg)
	defer client.CloseIdleConnections()

	logger.Debug("analyzing", zap.String("backend", client.BaseURL()),
		zap.String("video1", analysis.ExtractVideoID(args[0])),
		zap.String("video2", analysis.ExtractVideoID(args[1])))

	ctrl := analysis.NewController()
	state, err := ctrl.Submit(commandContext(cmd), client, args[0], args[1])
	if err != nil {
		logger.Error("analysis failed", zap.Error(err), zap.Stringer("phase", state.Phase))
		if state.Phase == analysis.PhaseError {
			return errors.New(state.ErrorMessage)
		}
		return err
	}

	g := guide.Build(state.Result)
	if analyzeExport != "" {
		if err := export.Save(g, analyzeExport); err != nil {
			return err
		}
		logger.Info("workbook written", zap.String("path", analyzeExport))
	}

	out := cmd.OutOrStdout()
	switch {
	case analyzeJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state.Result)
	case analyzeRaw:
		_, err := fmt.Fprint(out, guide.Markdown(g, guide.View{}))
		return err
	default:
		width := cfg.UI.Width
		if width <= 0 {
			width = defaultRenderWidth
		}
		style := ui.StyleFor(markdownStyle(cfg), cfg.UI.DarkMode(ui.DetectDark))
		mr := ui.NewMarkdownRenderer(style, width)
		_, err := fmt.Fprintln(out, mr.Render(guide.Markdown(g, guide.View{})))
		return err
	}
}

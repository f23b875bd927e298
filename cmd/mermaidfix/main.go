// cmd/mermaidfix/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/julianshen/mermaidfix/internal/config"
	"github.com/julianshen/mermaidfix/internal/logger"
	"github.com/julianshen/mermaidfix/internal/mermaid"
	"github.com/julianshen/mermaidfix/internal/runner"
	"github.com/julianshen/mermaidfix/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath   string
	logLevelFlag string
)

func versionString() string {
	return fmt.Sprintf("mermaidfix %s (commit: %s, built: %s)", version, commit, date)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mermaidfix",
		Short: "Repair generated Mermaid diagrams",
		Long: `mermaidfix extracts Mermaid diagrams from generated text, repairs the
syntax errors language models typically make, and reports what still fails
validation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ~/.config/mermaidfix/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "override log level: debug, info, warn, error")

	rootCmd.AddCommand(
		fixCmd(),
		validateCmd(),
		parseCmd(),
		batchCmd(),
		watchCmd(),
		historyCmd(),
		assembleCmd(),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if isTerminal(out) {
				fmt.Fprintln(out, tui.RenderBanner())
			}
			fmt.Fprintln(out, versionString())
		},
	}
}

// app bundles what every command needs after configuration is loaded.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	repairer *mermaid.Repairer
	runner   *runner.Runner
}

// loadConfig resolves the config path and loads the config.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	return cfg, nil
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	opts, err := cfg.Repair.Options()
	if err != nil {
		return nil, err
	}
	repairer := mermaid.NewRepairer(opts, mermaid.WithLogger(log))
	return &app{
		cfg:      cfg,
		log:      log,
		repairer: repairer,
		runner:   runner.NewRunner(repairer, log),
	}, nil
}

// stdinReader returns the command's input unless it is an interactive
// terminal, in which case nobody is piping content in.
func stdinReader(cmd *cobra.Command) io.Reader {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return in
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth falls back to 80 columns when w is not a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// resolveSource returns the content to work on and a name for it.
func resolveSource(cmd *cobra.Command, text string, args []string) (source, content string, err error) {
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	content, err = runner.ResolveInput(text, file, stdinReader(cmd))
	if err != nil {
		return "", "", err
	}
	switch {
	case strings.TrimSpace(text) != "":
		return "text", content, nil
	case file != "":
		return file, content, nil
	}
	return "stdin", content, nil
}

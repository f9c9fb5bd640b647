// Package cmd provides the root command and CLI setup for scribe.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"scribe/config"
	"scribe/editor"

	"github.com/spf13/cobra"
)

type options struct {
	configPath    string
	theme         string
	highlighter   string
	nativeDialogs bool
	logFile       string
	saveConfig    bool
}

// runEditor starts the terminal UI. Tests replace it.
var runEditor = func(cfg *config.Config, logger *slog.Logger, path string) error {
	return editor.New(cfg, editor.Options{Logger: logger}).Run(path)
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "scribe [file]",
		Short: "Minimal terminal text editor",
		Long: `Scribe is a small terminal text editor with a File and Edit menu,
clipboard support, a word counter and keyword/string/comment highlighting.

If file does not exist yet it is created on the first save.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, closeLog, err := openLogger(opts.logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			if opts.saveConfig {
				if err := cfg.Save(opts.configPath); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				logger.Info("settings saved", slog.String("path", settingsPath(opts.configPath)))
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			logger.Info("starting", slog.String("file", path), slog.String("theme", cfg.Theme))
			return runEditor(cfg, logger, path)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "settings file (default ~/.config/scribe/settings.json)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "color theme: light, dark, monokai, nord, solarized-dark")
	cmd.Flags().StringVar(&opts.highlighter, "highlighter", "", "highlighter: pattern or chroma")
	cmd.Flags().BoolVar(&opts.nativeDialogs, "native-dialogs", false, "use the desktop file chooser when built with -tags native")
	cmd.Flags().BoolVar(&opts.saveConfig, "save-config", false, "write the effective settings back to the settings file")
	cmd.Flags().StringVar(&opts.logFile, "log-file", defaultLogPath(), `log destination, "-" to discard`)

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the settings file and applies flags the user set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		if _, ok := config.Themes[opts.theme]; !ok {
			return nil, fmt.Errorf("unknown theme %q", opts.theme)
		}
		cfg.Theme = opts.theme
	}
	if flags.Changed("highlighter") {
		switch opts.highlighter {
		case config.HighlighterPattern, config.HighlighterChroma:
			cfg.Highlighter = opts.highlighter
		default:
			return nil, fmt.Errorf("unknown highlighter %q", opts.highlighter)
		}
	}
	if flags.Changed("native-dialogs") {
		cfg.NativeDialogs = opts.nativeDialogs
	}
	return cfg, nil
}

func settingsPath(path string) string {
	if path == "" {
		return config.ConfigPath()
	}
	return path
}

func defaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "scribe", "scribe.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "-"
	}
	return filepath.Join(home, ".local", "state", "scribe", "scribe.log")
}

// openLogger returns a text logger appending to path. The terminal belongs
// to the editor, so logs never go to stdout or stderr.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" || path == "-" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { f.Close() }, nil
}

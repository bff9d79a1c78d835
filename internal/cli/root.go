// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/supportchat/internal/app"
	"github.com/jeranaias/supportchat/internal/config"
	"github.com/jeranaias/supportchat/internal/ui/chat"
	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// Version information, set by main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var errorStyle = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	noPersist  bool
	language   string
}

// configFile returns the config path in use.
func (o *globalOptions) configFile() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the config and applies the --language flag.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path, err := o.configFile()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.language != "" {
		cfg.Chat.Language = o.language
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "supportchat",
		Short:         "Terminal chat client for a multilingual support assistant",
		Long:          "supportchat talks to a customer-support NLU backend. It opens a full-screen chat on a terminal and a line-based chat otherwise.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if IsTTY() && IsStdoutTTY() {
				return runTUI(cmd.Context(), opts)
			}
			return runREPL(cmd.Context(), opts, NewPlainReader(cmd.InOrStdin()), cmd.OutOrStdout(), false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.supportchat/config.toml)")
	pf.BoolVar(&opts.noPersist, "no-persist", false, "keep preferences in memory only")
	pf.StringVarP(&opts.language, "language", "l", "", "language override (BCP 47 code or \"auto\")")

	root.AddCommand(
		newChatCommand(opts),
		newSendCommand(opts),
		newTrainCommand(opts),
		newMockBackendCommand(),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// =============================================================================
// FRONT ENDS
// =============================================================================

// runTUI runs the full-screen chat.
func runTUI(ctx context.Context, opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// Quitting cancels any request still in flight.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := chat.NewBridge()
	var program *tea.Program

	a, err := app.New(cfg, app.Options{
		Renderer:  bridge,
		NoPersist: opts.noPersist,
		OnTranscript: func(text string) {
			if program != nil {
				program.Send(chat.TranscriptMsg{Text: text})
			}
		},
		OnQuit: func() {
			if program != nil {
				program.Quit()
			}
		},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	program = tea.NewProgram(chat.New(ctx, a), chat.ProgramOptions()...)
	bridge.Attach(program)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			program.Quit()
		case <-done:
		}
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}

// runREPL runs the line-based chat over in.
func runREPL(ctx context.Context, opts *globalOptions, in LineReader, out io.Writer, interactive bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	repl := NewREPL(in, out)
	// The session's theme replaces the placeholder once it is loaded.
	renderer := NewRenderer(out, styles.NewTheme(styles.ModeDark), RendererOptions{
		Interactive: interactive,
		Timestamps:  interactive && cfg.UI.ShowTimestamps,
		Width:       GetTerminalWidth(),
	})

	a, err := app.New(cfg, app.Options{
		Renderer:     renderer,
		NoPersist:    opts.noPersist,
		OnTranscript: repl.Prefill,
		OnQuit:       repl.Quit,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	renderer.SetTheme(a.Themes.Theme())
	repl.Bind(a)
	if e, ok := in.(*LineEditor); ok {
		e.SetCommands(commandNames(a))
	}
	return repl.Run(ctx, renderer)
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"version":    Version,
				"git_commit": GitCommit,
				"build_date": BuildDate,
				"go_version": runtime.Version(),
				"platform":   runtime.GOOS + "/" + runtime.GOARCH,
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "supportchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

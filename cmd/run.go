package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/autogit/autogit/internal/actions"
	"github.com/autogit/autogit/internal/config"
	"github.com/autogit/autogit/internal/git"
	"github.com/autogit/autogit/internal/logging"
	"github.com/autogit/autogit/internal/panel"
	"github.com/autogit/autogit/internal/ui"
)

var errNotTerminal = errors.New("autogit needs an interactive terminal")

func isTTY() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// runPanel wires git, the panels and the terminal host, then runs the
// program until the panel is closed.
func runPanel(cmd *cobra.Command, opts *rootOptions, kind panel.Kind) error {
	root, err := git.RepoRoot(opts.repo)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath, root)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.LogFilePath(cfg.LogFile), logging.DebugEnabled(opts.debug))
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	logger.Info("starting",
		slog.String("panel", kind.String()),
		slog.String("repo", root),
		slog.String("config", cfg.Path),
	)

	if !isTTY() {
		return errNotTerminal
	}

	runner := git.NewExecRunner(cfg.Git, root, logger)
	client := git.NewClient(runner, cfg.Remote)
	machine := panel.NewMachine(actions.New(client, logger), logger)

	model := ui.NewModel(cmd.Context(), machine, ui.Options{
		Kind:   kind,
		Width:  cfg.Width,
		Logger: logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running app: %w", err)
	}
	logger.Info("closed")
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autogit/autogit/internal/panel"
)

type rootOptions struct {
	repo       string
	configPath string
	debug      bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "autogit",
		Short: "Status and branch panels for git",
		Long: `autogit - a terminal git porcelain.

Opens a status panel (stage, unstage, commit, push, pull) or a branch panel
(switch, merge, delete, create) and runs git for every key press.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd, opts, panel.KindStatus)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.repo, "repo", "C", ".", "run as if started in this directory")
	flags.StringVar(&opts.configPath, "config", "", "config file (default .git/autogit.yaml, then the user config dir)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug records to the log file")

	cmd.AddCommand(newStatusCmd(opts), newBranchCmd(opts))
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [args...]",
		Short: "Open the status panel",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd, opts, panel.KindStatus)
		},
	}
}

func newBranchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "branch [args...]",
		Short: "Open the branch panel",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd, opts, panel.KindBranch)
		},
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gerunddev/algodeck/internal/commands"
	"github.com/gerunddev/algodeck/internal/config"
	"github.com/gerunddev/algodeck/internal/styles"
)

const version = "0.1.0"

var flags commands.Flags

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrLintFailed) {
			fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Error: "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "algodeck",
		Short: "Browse and check algorithm explanations in the terminal",
		Long: fmt.Sprintf(`algodeck renders algorithm write-ups with callouts, code and inline
explanations, and checks their markup.

Configuration:
  Config file: %s
  State file:  %s`, config.ConfigPath(), config.StateFilePath()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.Theme, "theme", "", "color theme: dark or light")
	pf.IntVar(&flags.Width, "width", 0, "wrap rendered text at this width")
	pf.StringVar(&flags.CatalogDir, "catalog", "", "catalog directory (default: built-in samples)")
	pf.StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "log debug events (same as --log-level debug)")

	root.AddCommand(
		listCmd(),
		renderCmd(),
		browseCmd(),
		lintCmd(),
		fmtCmd(),
		watchCmd(),
		configCmd(),
		versionCmd(),
	)
	return root
}

// withEnv runs fn with a set up environment
func withEnv(fn func(cmd *cobra.Command, env *commands.Env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := commands.Setup(flags, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer env.Close()
		return fn(cmd, env, args)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List algorithms by category",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *commands.Env, _ []string) error {
			return commands.List(cmd.Context(), env)
		}),
	}
}

func renderCmd() *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render an algorithm to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, env *commands.Env, args []string) error {
			return commands.Render(cmd.Context(), env, args[0], section)
		}),
	}
	cmd.Flags().StringVarP(&section, "section", "s", "", "render only this section")
	return cmd
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse algorithms interactively",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *commands.Env, _ []string) error {
			return commands.Browse(cmd.Context(), env)
		}),
	}
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [id...]",
		Short: "Check markup of all or some algorithms",
		RunE: withEnv(func(cmd *cobra.Command, env *commands.Env, args []string) error {
			return commands.Lint(cmd.Context(), env, args)
		}),
	}
}

func fmtCmd() *cobra.Command {
	var (
		section  string
		showDiff bool
	)
	cmd := &cobra.Command{
		Use:   "fmt <id>",
		Short: "Print a section in canonical markup",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, env *commands.Env, args []string) error {
			return commands.Fmt(cmd.Context(), env, args[0], section, showDiff)
		}),
	}
	cmd.Flags().StringVarP(&section, "section", "s", "", "section to format (required)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a diff against the authored text")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-check catalog entries as they are edited",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *commands.Env, _ []string) error {
			return commands.Watch(cmd.Context(), env)
		}),
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(_ *cobra.Command, env *commands.Env, _ []string) error {
			return commands.ConfigShow(env)
		}),
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(_ *cobra.Command, env *commands.Env, _ []string) error {
			return commands.ConfigInit(env, force)
		}),
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.AddCommand(initCmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "algodeck v%s\n", version)
		},
	}
}

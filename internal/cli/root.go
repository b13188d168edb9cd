// Package cli provides the command-line interface for sqlarrow.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mathias-mike/arrow/internal/cli/commands"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "sqlarrow",
		Short: "sqlarrow - SQL result sets as Arrow schemas",
		Long: `sqlarrow describes the Apache Arrow schema a database query converts to.

Conversion policy (explicit column types, array element types, time zone,
metadata, batch size, decimal rounding) comes from a YAML profile,
SQLARROW_* environment variables and flags.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			cmd.SetContext(commands.WithLogger(cmd.Context(), logger))
			logger.Debug("starting", slog.String("command", cmd.Name()), slog.String("version", Version))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger writes text records to w: debug and up when verbose, warnings
// and up otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqlarrow.

To load completions:

Bash:
  $ source <(sqlarrow completion bash)

Zsh:
  $ sqlarrow completion zsh > "${fpath[1]}/_sqlarrow"

Fish:
  $ sqlarrow completion fish | source

PowerShell:
  PS> sqlarrow completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

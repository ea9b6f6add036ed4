package dots

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dots/internal/version"
	"github.com/arthur-debert/dots/pkg/apply"
	"github.com/arthur-debert/dots/pkg/filesystem"
	"github.com/arthur-debert/dots/pkg/logging"
	"github.com/arthur-debert/dots/pkg/transform"
	"github.com/arthur-debert/dots/pkg/world"
)

// NewRootCmd builds the dots command tree.
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "dots",
		Short: rootShort,
		Long:  rootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// run executes the full pipeline: gather, transform, apply. Every
// accumulated error is logged before the command reports failure.
func run(cmd *cobra.Command) error {
	fs := filesystem.NewOS()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to obtain current working directory: %w", err)
	}

	w, errs := world.Gather(cmd.Context(), fs, cwd, world.NewHTTPFetcher())
	if errs != nil {
		return reportErrors("gathering", errs)
	}

	writes, errs := transform.Process(w)
	if errs != nil {
		return reportErrors("transformation", errs)
	}

	if errs := apply.ApplyAll(fs, writes); errs != nil {
		return reportErrors("application", errs)
	}

	wrote := color.New(color.FgCyan).SprintFunc()
	for _, write := range writes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", wrote("wrote"), write.Path)
	}

	return nil
}

// reportErrors logs every accumulated error and returns the overall
// failure for the stage.
func reportErrors(stage string, errs []error) error {
	for _, err := range errs {
		log.Error().Msg(err.Error())
	}
	return fmt.Errorf("%s failed with %d error(s)", stage, len(errs))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dots version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}

package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/linkstat/internal/config"
	"github.com/idelchi/linkstat/internal/linkstat"
	"github.com/idelchi/linkstat/internal/walk"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command. Flags are bound into a fresh viper
// instance so that flags override the environment and the config file.
func (c CLI) Command() *cobra.Command {
	var configFile string

	v := viper.New()

	cmd := &cobra.Command{
		Use:   "linkstat [flags] [path]",
		Short: "Measure a directory tree with and without hard-linked files",
		Long: heredoc.Doc(`
			linkstat reports the size of a directory tree twice: once counting every
			file, hard links included, and once counting only data that is not
			shared through hard links.

			Positional Arguments:
			  path                   Directory to analyze. When omitted, the first line of
			                         the storage INI file ("Key = Path") names the directory,
			                         falling back to the current directory.

			Policies:
			  exclude-shared         Leave every hard-linked file out of the second total.
			  count-once             Count the data behind each group of hard links once.

			Walkers:
			  fast                   Parallel traversal, buffered.
			  stack                  Sequential traversal with an explicit work-list.

			Settings can also come from a YAML config file and from LINKSTAT_*
			environment variables (for example LINKSTAT_POLICY=count-once).
		`),
		Version:       c.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic(cmd.Context(), cfg, used, args, streams{
				in:  cmd.InOrStdin(),
				out: cmd.OutOrStdout(),
				err: cmd.ErrOrStderr(),
			})
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringVarP(&configFile, "config", "c", "", "Config file (default is <user config dir>/linkstat/config.yaml)")
	flags.StringP(config.KeyPolicy, "p", string(linkstat.ExcludeShared),
		fmt.Sprintf("Dedup policy for the second total: %v", linkstat.Policies))
	flags.StringP(config.KeyWalker, "w", string(walk.Fast), fmt.Sprintf("Traversal strategy: %v", walk.Kinds))
	flags.IntP(config.KeyWorkers, "j", 0, "Number of parallel workers (0=number of CPUs)")
	flags.StringP(config.KeyOutput, "o", "table", "Output format: json or table")
	flags.String(config.KeyStorageINI, "", "Storage INI file naming the default path (default is <user config dir>/osu/storage.ini)")
	flags.Bool(config.KeyPause, false, "Wait for Enter before exiting")
	flags.Bool(config.KeyDebug, false, "Enable debug output")

	for _, key := range []string{
		config.KeyPolicy,
		config.KeyWalker,
		config.KeyWorkers,
		config.KeyOutput,
		config.KeyStorageINI,
		config.KeyPause,
		config.KeyDebug,
	} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	return cmd
}

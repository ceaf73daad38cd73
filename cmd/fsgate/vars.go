package cli

import (
	"github.com/spf13/cobra"

	"github.com/neboloop/fsgate/internal/config"
)

// Shared CLI flags (used across command files)
var (
	cfgFile  string
	useHTTP  bool
	httpAddr string
)

// ServerConfig holds the loaded configuration (set by main)
var ServerConfig *config.Config

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config) *cobra.Command {
	ServerConfig = c

	rootCmd := &cobra.Command{
		Use:   "fsgate",
		Short: "fsgate - sandboxed filesystem MCP server",
		Long: `fsgate exposes file operations (read, write, edit, list, move, search,
stat) over the Model Context Protocol, restricted to a configured
allow-list of root directories.

Set ALLOWED_DIR to a path or a JSON array of paths, then run
'fsgate serve'. An empty allow-list denies every operation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return nil
			}
			loaded, err := config.LoadFile(cfgFile)
			if err != nil {
				return err
			}
			// Environment still wins over any config file.
			if err := loaded.ApplyEnv(); err != nil {
				return err
			}
			*ServerConfig = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: embedded defaults)")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(RootsCmd())

	return rootCmd
}

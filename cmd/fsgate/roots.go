package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neboloop/fsgate/internal/sandbox"
)

// RootsCmd prints the resolved allow-list
func RootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Print the resolved allowed directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			guard, err := sandbox.NewGuard(ServerConfig.AllowedDirs)
			if err != nil {
				return err
			}
			roots := guard.Roots()
			if len(roots) == 0 {
				fmt.Println("(none - every operation will be denied)")
				return nil
			}
			for _, r := range roots {
				fmt.Println(r)
			}
			return nil
		},
	}
}

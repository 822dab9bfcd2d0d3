package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symisland/pkg/cache"
)

func newCacheCmd(cf *cacheFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cf.cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cf.cacheDir()
			if err != nil {
				return err
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.(*cache.FileCache).Clear(); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("cache cleared", "dir", dir)
			return nil
		},
	})

	return cmd
}

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sitectl",
		Short: "Site admin CLI",
		Long: `sitectl is a maintenance tool for the site backend.

Example usage:
  sitectl hash-password 's3cret'          # bcrypt hash for admin.password_hash
  echo -n 's3cret' | sitectl hash-password
  sitectl gallery-stats --config=/etc/site/config.yml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "YAML config file (default is config.yml)")

	root.AddCommand(newHashPasswordCmd())
	root.AddCommand(newGalleryStatsCmd())
	return root
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tearoomcms/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the CMS configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.NewLoader(appCfg.ConfigFile).Load(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return err
	},
}

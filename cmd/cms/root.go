package main

import (
	"github.com/spf13/cobra"

	"tearoomcms/internal/config"
)

var (
	configPath string // Path to the development configuration file

	appCfg *config.AppConfig

	rootCmd = &cobra.Command{
		Use:   "cms",
		Short: "Tearoom CMS serves the tearoom website and its admin panel",
		Long: `Tearoom CMS serves the public tearoom website and the admin panel used to manage
carousel images, menus, Instagram credentials and job postings.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			appCfg = config.Load()
			if configPath != "" {
				appCfg.ConfigFile = configPath
			}
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"development configuration file (default "+config.DefaultDevConfigFile+")")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

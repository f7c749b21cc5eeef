package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"tearoomcms/internal/logger"
)

func init() { //nolint: gochecknoinits
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode (templates reloaded from disk, insecure cookies)")

	rootCmd.AddCommand(serveCmd)
}

var (
	devMode bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the public site and the admin panel",
		PreRun: func(_ *cobra.Command, _ []string) {
			if devMode {
				appCfg.DevMode = true
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			if err := logger.Init(appCfg.Log, appCfg.AppName, reg); err != nil {
				return err
			}

			srv, err := newServer(cmd.Context(), appCfg, reg)
			if err != nil {
				return err
			}
			defer srv.Close()

			go srv.WaitShutdown()

			return srv.Start(":" + appCfg.Port)
		},
	}
)

package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tearoomcms/internal/config"
	"tearoomcms/internal/content"
	"tearoomcms/internal/logger"
)

func init() { //nolint: gochecknoinits
	snapshotCmd.Flags().StringVar(&snapshotDir, "out", "", "directory the static data files are written to (default DATA_DIR)")

	rootCmd.AddCommand(snapshotCmd)
}

var (
	snapshotDir string

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Write the live content to the static fallback files",
		Long: `Reads carousel, menus, jobs and instagram from the live document store and writes
carousel.json, menus.json, jobs.json and instagram.json. The public site falls back to these
files when the store is unavailable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(appCfg.Log, appCfg.AppName, nil); err != nil {
				return err
			}

			cfg, err := config.NewLoader(appCfg.ConfigFile).Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := connect(ctx, cfg.Store, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(ctx); err != nil {
					log.Error().Err(err).Msg("failed to close document store")
				}
			}()

			dir := snapshotDir
			if dir == "" {
				dir = appCfg.Site.DataDir
			}

			mgr := content.NewManager(newRepositories(store).sources(), nil,
				content.WithContactEmail(appCfg.Site.ContactEmail))
			if err := mgr.WriteSnapshot(ctx, dir); err != nil {
				return errors.Wrap(err, "write snapshot")
			}
			return nil
		},
	}
)

package main

import (
	"github.com/ray-remotestate/bistro/config"
	"github.com/ray-remotestate/bistro/database"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()

			if err := database.Migrate(cfg.Database.URL, down); err != nil {
				return err
			}
			logrus.Println("migration is successful")
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back every migration")
	return cmd
}

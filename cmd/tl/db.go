package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/threadline/internal/config"
	"github.com/zulandar/threadline/internal/db"
	"github.com/zulandar/threadline/internal/store"
	"gorm.io/gorm"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBImportCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Threadline database",
		Long:  "Connects to the configured store (SQLite file or MySQL/Dolt server) and migrates all tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s store\n", cfg.Database.Driver)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))
	return nil
}

func newDBImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import <fixture.yaml>",
		Short: "Import reports, actions and people from a YAML fixture",
		Long:  "Upserts every report, action and personal detail of a fixture file. Nothing is written if any action fails to decode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBImport(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	return cmd
}

func runDBImport(cmd *cobra.Command, configPath, fixturePath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	stats, err := store.ImportFixtures(gormDB, fixturePath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d reports, %d actions, %d people from %s\n",
		stats.Reports, stats.Actions, stats.People, fixturePath)
	return nil
}

// connectFromConfig loads config and connects to the configured store.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

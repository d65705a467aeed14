package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/dcx/internal/shared"
)

// SetupConfig writes the built-in config template to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set node.url and node.application_key (or %s and %s in .env)\n", shared.EnvNode, shared.EnvApplicationKey)
	r.writePlain("2. Run 'dcx setup database' to create the session journal\n")
	r.writePlain("3. Run 'dcx grab' to mirror the node\n")
	return nil
}

// SetupDatabase initializes the session journal and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, owned, err := r.database()
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if owned {
		defer db.Close()
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Session journal ready at %s\n", r.config.Database.Path)
}

package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appServices "github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/config"
)

// CreateDefaultData creates the bootstrap administrator from configuration
// unless an admin with the same email already exists.
func CreateDefaultData(ctx context.Context, adminService appServices.AdminService, cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (bootstrap admin)...")

	created, err := adminService.EnsureAdmin(ctx, appServices.AdminInput{
		FullName: cfg.Admin.FullName,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	if !created {
		lgr.Debug().Msg("Bootstrap admin present or not configured")
	}
	return nil
}

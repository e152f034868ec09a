package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/dparedes/leagueadmin/internal/app/models"
	appRepos "github.com/dparedes/leagueadmin/internal/app/repositories"
	"github.com/dparedes/leagueadmin/internal/pkg/auth"
)

// Default credentials for the fixed admin created on first boot. The
// password must be changed after the first login.
const (
	defaultAdminName     = "Administrador"
	defaultAdminMail     = "admin@leagueadmin.app"
	defaultAdminPassword = "admin1234"
)

// CreateDefaultData creates the fixed admin account when the users table is
// empty. The fixed flag makes the account immune to demotion, deactivation
// and deletion, so there is always a way back in.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	hasUsers, err := userRepo.HasAnyUser(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if hasUsers {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing default admin password: %w", err)
	}

	admin := &appModels.User{
		Name:     defaultAdminName,
		Mail:     defaultAdminMail,
		Password: hashed,
		Role:     appModels.RoleAdmin,
		State:    true,
		Fixed:    true,
	}

	id, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		return fmt.Errorf("creating fixed admin: %w", err)
	}

	lgr.Info().Int64("userID", id).Str("mail", defaultAdminMail).Msg("Fixed admin account created")
	return nil
}

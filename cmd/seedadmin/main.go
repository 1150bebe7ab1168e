// Command seedadmin creates an admin account or promotes an existing one.
// Admin is never granted through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"neighborhood/config"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/errors"
	"neighborhood/internal/infra/auth"
	"neighborhood/internal/infra/cache"
	"neighborhood/internal/infra/changefeed"
	logs "neighborhood/internal/infra/log"
	"neighborhood/internal/infra/metrics"
	"neighborhood/internal/infra/persistence/postgres"
	"neighborhood/internal/infra/storage"
	"neighborhood/internal/usecase"
	"neighborhood/internal/usecase/impl"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const seedTimeout = time.Minute

type seederParams struct {
	fx.In

	Identity     usecase.IdentityUsecase
	UserRepo     repository.UserRepository
	ProfileRepo  repository.ProfileRepository
	ProfileCache service.ProfileCache
	Logger       *slog.Logger
}

type seeder struct {
	seederParams
}

func newSeeder(params seederParams) *seeder {
	return &seeder{seederParams: params}
}

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "password for a new account, ignored when the account exists")
	fullName := flag.String("name", "Administrator", "full name for a new account")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "usage: seedadmin -email admin@example.com [-password secret] [-name \"Full Name\"]")
		os.Exit(2)
	}

	var s *seeder
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewProfileRepository,
			auth.NewBcryptHasherFromConfig,
			auth.NewJWTService,
			cache.NewRedisClient,
			cache.NewProfileCache,
			changefeed.New,
			storage.New,
			metrics.NewRecorder,
			metrics.NewMetricsRecorder,
			impl.NewIdentityService,
			newSeeder,
		),
		fx.Populate(&s),
	)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start", slog.Any("error", err))
		os.Exit(1)
	}

	err := s.seed(ctx, *email, *password, *fullName)

	if stopErr := app.Stop(ctx); stopErr != nil {
		slog.Error("Failed to stop cleanly", slog.Any("error", stopErr))
	}
	if err != nil {
		slog.Error("Failed to seed admin", slog.Any("error", err))
		os.Exit(1)
	}
}

func (s *seeder) seed(ctx context.Context, email, password, fullName string) error {
	userID, err := s.ensureUser(ctx, email, password, fullName)
	if err != nil {
		return err
	}

	if err := s.ProfileRepo.SetRole(ctx, userID, entity.RoleAdmin); err != nil {
		return errors.Wrap(err, "failed to grant admin role")
	}

	// The header cache would otherwise show the old role until it expires.
	if err := s.ProfileCache.Delete(ctx, userID); err != nil {
		s.Logger.Warn("Failed to drop cached profile", slog.Any("error", err))
	}

	s.Logger.Info("Admin ready", slog.String("email", email), slog.Any("userID", userID))

	return nil
}

func (s *seeder) ensureUser(ctx context.Context, email, password, fullName string) (uuid.UUID, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		s.Logger.Info("Promoting existing account", slog.String("email", email))

		return user.ID, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return uuid.Nil, errors.Wrap(err, "failed to look up account")
	}

	if password == "" {
		return uuid.Nil, errors.New("password is required to create a new account")
	}

	user, err = s.Identity.SignUp(ctx, &usecase.SignUpInput{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to create account")
	}

	return user.ID, nil
}

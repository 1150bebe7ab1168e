// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager        repository.TransactionManager
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	profileRepo      repository.ProfileRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	changeFeed       service.ChangeFeed
	profileCache     service.ProfileCache
	metrics          service.MetricsRecorder
	uploader         *uploader
	logger           *slog.Logger
	now              func() time.Time
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	ProfileRepo      repository.ProfileRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Storage          service.ObjectStorage
	ChangeFeed       service.ChangeFeed
	ProfileCache     service.ProfileCache
	Metrics          service.MetricsRecorder
	Logger           *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		txManager:        params.TxManager,
		authRepo:         params.AuthRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		profileRepo:      params.ProfileRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		changeFeed:       params.ChangeFeed,
		profileCache:     params.ProfileCache,
		metrics:          params.Metrics,
		uploader:         newUploader(params.Storage, params.Metrics, params.Logger),
		logger:           params.Logger,
		now:              time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp creates a buyer account.
func (srv *identityService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	passwordHash, err := srv.preparePassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{ID: uuid.New(), Email: email}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.createAccount(ctx, repoFactory, user, passwordHash, input.FullName)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", user.ID))

	return user, nil
}

// SignUpSeller uploads the proof, then writes the account and its pending application together.
func (srv *identityService) SignUpSeller(ctx context.Context, input *usecase.SellerSignUpInput) (*usecase.SellerSignUpOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting seller signup", slog.String("email", email), slog.String("business", input.BusinessName))

	if input.Proof.IsEmpty() {
		return nil, errors.WithStack(domainerrors.ErrProofRequired)
	}

	passwordHash, err := srv.preparePassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{ID: uuid.New(), Email: email}

	proofURL, err := srv.uploader.uploadProof(ctx, user.ID, input.Proof)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload proof document")
	}

	app := &entity.SellerApplication{
		ID:            uuid.New(),
		UserID:        user.ID,
		BusinessName:  strings.TrimSpace(input.BusinessName),
		OwnerName:     strings.TrimSpace(input.OwnerName),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		Category:      strings.TrimSpace(input.Category),
		Address:       strings.TrimSpace(input.Address),
		ProofURL:      proofURL,
		Status:        entity.ApplicationPending,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.createAccount(ctx, repoFactory, user, passwordHash, input.FullName); err != nil {
			return err
		}

		if err := repoFactory.NewApplicationRepository().Create(ctx, app); err != nil {
			return errors.Wrap(err, "failed to create seller application")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Seller signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute seller signup transaction")
	}

	publishChange(ctx, srv.log(ctx), srv.changeFeed, entity.CollectionSellerApplications, entity.ChangeInsert, app.ID, srv.now())

	srv.log(ctx).Info("Seller application submitted", slog.Any("userID", user.ID), slog.Any("applicationID", app.ID))

	return &usecase.SellerSignUpOutput{User: user, Application: app}, nil
}

func (srv *identityService) preparePassword(ctx context.Context, password string) (string, error) {
	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		srv.log(ctx).Warn("Password validation failed during signup", slog.Any("error", err))

		return "", errors.Wrap(err, "password does not meet security requirements")
	}

	passwordHash, err := srv.hasher.Hash(password)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password during signup")
	}

	return passwordHash, nil
}

// createAccount writes the identity, its email credential and a buyer profile.
func (srv *identityService) createAccount(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	user *entity.User,
	passwordHash string,
	fullName string,
) error {
	authRepo := repoFactory.NewAuthRepository()

	_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, user.Email)
	if err == nil {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrAuthNotFound) {
		return errors.Wrap(err, "failed to find authentication")
	}

	if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	auth := &entity.Authentication{
		ID:             uuid.New(),
		UserID:         user.ID,
		Provider:       entity.ProviderTypeEmail,
		ProviderUserID: user.Email,
		PasswordHash:   passwordHash,
	}
	if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
		return errors.Wrap(err, "failed to create authentication")
	}

	profile := &entity.Profile{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     strings.TrimSpace(fullName),
		Role:         entity.RoleBuyer,
		IsPublic:     true,
		ShowEmail:    false,
		ShowActivity: true,
	}
	if err := repoFactory.NewProfileRepository().Create(ctx, profile); err != nil {
		return errors.Wrap(err, "failed to create profile")
	}

	return nil
}

// SignIn verifies the credential, opens a session and runs the portal gate against the stored role.
func (srv *identityService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting sign-in", slog.String("email", email), slog.String("portal", input.Portal.String()))

	if !input.Portal.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown portal " + input.Portal.String())
	}

	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Sign-in failed", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// bcrypt is CPU-bound, so it runs outside any transaction.
	if !srv.hasher.Check(input.Password, auth.PasswordHash) {
		srv.log(ctx).Warn("Sign-in failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
	}

	sessionID := uuid.New()
	_, refreshToken, err := srv.tokenService.GenerateTokens(auth.UserID, sessionID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		ID:        sessionID,
		UserID:    auth.UserID,
		TokenHash: hashRefreshToken(refreshToken),
		ExpiresAt: srv.now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	profile, profileErr := srv.profileRepo.FindByID(ctx, auth.UserID)
	decision := decidePortal(profile, profileErr, input.Portal)
	srv.metrics.PortalDecision(input.Portal.String(), decision.String())

	if decision != usecase.DecisionGranted {
		srv.revokeSession(ctx, sessionID, auth.UserID)
		srv.log(ctx).Warn("Portal gate denied sign-in",
			slog.Any("userID", auth.UserID),
			slog.String("portal", input.Portal.String()),
			slog.String("decision", decision.String()),
			slog.Any("profileError", profileErr),
		)

		return nil, decisionError(decision)
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(auth.UserID, sessionID, []string{profile.Role.String()})
	if err != nil {
		srv.revokeSession(ctx, sessionID, auth.UserID)

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	if err := srv.profileCache.Set(ctx, entity.NewHeaderProfile(profile)); err != nil {
		srv.log(ctx).Warn("Failed to cache header profile", slog.Any("userID", profile.ID), slog.Any("error", err))
	}

	srv.log(ctx).Info("Signed in", slog.Any("userID", auth.UserID), slog.String("portal", input.Portal.String()))

	return &usecase.SignInOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
		Profile:      profile,
	}, nil
}

// Refresh issues a new access token. The refresh token itself is not rotated.
func (srv *identityService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil || claims.Type != service.TokenTypeRefresh {
		return "", errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	session, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return "", errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "session not found")
		}

		return "", errors.Wrap(err, "failed to find session")
	}

	if session.ID != claims.SessionID || session.IsExpired(srv.now()) {
		return "", errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "session expired")
	}

	var roles []string
	if profile, err := srv.profileRepo.FindByID(ctx, session.UserID); err == nil {
		roles = []string{profile.Role.String()}
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(session.UserID, session.ID, roles)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	return accessToken, nil
}

// SignOut revokes the session of the refresh token. Unknown tokens are ignored.
func (srv *identityService) SignOut(ctx context.Context, refreshToken string) error {
	session, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Debug("Sign-out with unknown refresh token")

			return nil
		}

		return errors.Wrap(err, "failed to find session")
	}

	return srv.deleteSession(ctx, session)
}

// SignOutSession revokes a session by id. Unknown sessions are ignored.
func (srv *identityService) SignOutSession(ctx context.Context, sessionID uuid.UUID) error {
	session, err := srv.refreshTokenRepo.FindRefreshTokenByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find session")
	}

	return srv.deleteSession(ctx, session)
}

func (srv *identityService) deleteSession(ctx context.Context, session *entity.RefreshToken) error {
	if err := srv.refreshTokenRepo.DeleteRefreshToken(ctx, session.ID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	if err := srv.profileCache.Delete(ctx, session.UserID); err != nil {
		srv.log(ctx).Warn("Failed to evict header profile", slog.Any("userID", session.UserID), slog.Any("error", err))
	}

	srv.log(ctx).Info("Signed out", slog.Any("userID", session.UserID), slog.Any("sessionID", session.ID))

	return nil
}

// revokeSession is the forced sign-out of a denied gate. Failures are logged only.
func (srv *identityService) revokeSession(ctx context.Context, sessionID, userID uuid.UUID) {
	if err := srv.refreshTokenRepo.DeleteRefreshToken(ctx, sessionID); err != nil {
		srv.log(ctx).Error("Failed to revoke session", slog.Any("sessionID", sessionID), slog.Any("error", err))
	}

	if err := srv.profileCache.Delete(ctx, userID); err != nil {
		srv.log(ctx).Warn("Failed to evict header profile", slog.Any("userID", userID), slog.Any("error", err))
	}
}

// CurrentSession resolves an access token to a live session.
func (srv *identityService) CurrentSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	claims, err := srv.tokenService.ValidateToken(accessToken)
	if err != nil || claims.Type != service.TokenTypeAccess {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "invalid access token")
	}

	session, err := srv.refreshTokenRepo.FindRefreshTokenByID(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Error("Failed to load session", slog.Any("sessionID", claims.SessionID), slog.Any("error", err))
		}

		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "session not found")
	}

	if session.UserID != claims.UserID || session.IsExpired(srv.now()) {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "session expired")
	}

	return &entity.Session{ID: session.ID, UserID: session.UserID}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashRefreshToken returns the hex SHA-256 stored in place of the raw refresh token.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

package impl

import (
	"context"
	"log/slog"

	"tracker/config"
	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/repository"
	"tracker/internal/domain/service"
	"tracker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Operation names reported to AuthMetrics.
const (
	opLogin     = "login"
	opVerifyOTP = "verify_otp"
	opRefresh   = "refresh"
	opLogout    = "logout"
	opAuthorize = "authorize"

	outcomeSuccess = "success"
)

// Refresh and logout speak about the refresh token, not the access token the gate checks.
var (
	errRefreshExpired   = domainerrors.ErrTokenExpired.WithMessage("Error : Refresh token has expired")
	errRefreshMalformed = domainerrors.ErrTokenMalformed.WithMessage("Error : Invalid refresh token")
	errNotRefreshToken  = domainerrors.ErrWrongTokenKind.WithMessage("Error : Token is not a refresh token")
	errRefreshRevoked   = domainerrors.ErrTokenRevoked.WithMessage("Error : Refresh token has been revoked")
	errRefreshHeader    = domainerrors.ErrMissingAuthHeader.WithMessage("Error : Missing or malformed Authorization header")
	errGateHeaderFormat = domainerrors.ErrMissingAuthHeader.WithMessage("Error: Invalid Authorization header format")
)

// authService implements the AuthUsecase interface.
type authService struct {
	verifier   usecase.CredentialVerifier
	challenges usecase.ChallengeManager
	issuer     usecase.SessionIssuer
	ledger     usecase.RevocationLedger
	codec      service.TokenCodec
	userRepo   repository.UserRepository
	deliverer  service.OTPDeliverer
	metrics    service.AuthMetrics
	liveRole   bool
	logger     *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Verifier   usecase.CredentialVerifier
	Challenges usecase.ChallengeManager
	Issuer     usecase.SessionIssuer
	Ledger     usecase.RevocationLedger
	Codec      service.TokenCodec
	UserRepo   repository.UserRepository
	Deliverer  service.OTPDeliverer
	Metrics    service.AuthMetrics `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	liveRole := false
	if params.Config != nil && params.Config.Auth != nil {
		liveRole = params.Config.Auth.RefreshRolePolicy == config.RefreshRoleLive
	}

	metrics := params.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &authService{
		verifier:   params.Verifier,
		challenges: params.Challenges,
		issuer:     params.Issuer,
		ledger:     params.Ledger,
		codec:      params.Codec,
		userRepo:   params.UserRepo,
		deliverer:  params.Deliverer,
		metrics:    metrics,
		liveRole:   liveRole,
		logger:     params.Logger,
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveAuth(string, string) {}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) observe(operation string, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = domainerrors.Code(err)
	}
	srv.metrics.ObserveAuth(operation, outcome)
}

// Login verifies the password and opens an OTP challenge.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (_ *usecase.LoginOutput, err error) {
	defer func() { srv.observe(opLogin, err) }()

	user, err := srv.verifier.VerifyCredentials(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	pending, err := srv.challenges.CreateChallenge(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	srv.deliver(ctx, user, pending)

	srv.log(ctx).Info("OTP challenge created", slog.Int64("user_id", user.ID))

	return &usecase.LoginOutput{TempToken: pending.Handle}, nil
}

// deliver hands the passcode to the out-of-band channel. Failures are logged only;
// the caller already holds a valid handle.
func (srv *authService) deliver(ctx context.Context, user *entity.User, pending *entity.PendingLogin) {
	event := &service.OTPEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		EventID:     uuid.NewString(),
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Code:        pending.Code,
		ExpiresAt:   pending.ExpiresAt,
	}

	if err := srv.deliverer.DeliverOTP(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to deliver OTP",
			slog.Int64("user_id", user.ID),
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
		)
	}
}

// VerifyOTP consumes the challenge and issues the session tokens.
func (srv *authService) VerifyOTP(ctx context.Context, input *usecase.VerifyOTPInput) (_ *usecase.VerifyOTPOutput, err error) {
	defer func() { srv.observe(opVerifyOTP, err) }()

	userID, err := srv.challenges.ValidateChallenge(ctx, input.TempToken, input.OTP)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User vanished between login steps", slog.Int64("user_id", userID))

			return nil, domainerrors.ErrUserVanished
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	tokens, err := srv.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login completed", slog.Int64("user_id", user.ID), slog.String("role", user.Role().String()))

	return &usecase.VerifyOTPOutput{User: user, Tokens: tokens}, nil
}

// Refresh supersedes the presented access token with a new one.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (_ *usecase.RefreshOutput, err error) {
	defer func() { srv.observe(opRefresh, err) }()

	claims, err := srv.codec.Decode(input.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, errRefreshExpired
		}

		return nil, errRefreshMalformed
	}

	if claims.Kind != entity.TokenKindRefresh {
		return nil, errNotRefreshToken
	}

	revoked, err := srv.ledger.IsBlacklisted(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errRefreshRevoked
	}

	user, err := srv.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	accessToken, ok := bearerToken(input.AuthorizationHeader)
	if !ok {
		return nil, errRefreshHeader
	}

	if err := srv.ledger.Blacklist(ctx, accessToken); err != nil {
		return nil, err
	}

	role := claims.Role
	if srv.liveRole {
		role = user.Role()
	}

	newAccess, err := srv.issuer.IssueAccess(user.ID, role)
	if err != nil {
		return nil, err
	}

	return &usecase.RefreshOutput{AccessToken: newAccess}, nil
}

// Logout revokes both tokens of the caller's session.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) (err error) {
	defer func() { srv.observe(opLogout, err) }()

	claims, err := srv.codec.Decode(input.RefreshToken)
	if err != nil {
		return domainerrors.ErrRefreshTokenInvalid
	}

	if claims.Kind != entity.TokenKindRefresh {
		return errNotRefreshToken
	}

	if claims.Subject != input.Principal.UserID {
		return domainerrors.ErrTokenMismatch
	}

	if err := srv.ledger.Blacklist(ctx, input.Principal.AccessToken); err != nil {
		return err
	}
	if err := srv.ledger.Blacklist(ctx, input.RefreshToken); err != nil {
		return err
	}

	srv.log(ctx).Info("Logout completed", slog.Int64("user_id", claims.Subject))

	return nil
}

// Authorize admits a bearer access token. It never consults the user directory.
func (srv *authService) Authorize(ctx context.Context, authorizationHeader string, allowed ...entity.Role) (_ *entity.Principal, err error) {
	defer func() {
		if err != nil {
			srv.observe(opAuthorize, err)
		}
	}()

	if authorizationHeader == "" {
		return nil, domainerrors.ErrMissingAuthHeader
	}

	token, ok := bearerToken(authorizationHeader)
	if !ok {
		return nil, errGateHeaderFormat
	}

	revoked, err := srv.ledger.IsBlacklisted(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domainerrors.ErrTokenRevoked
	}

	claims, err := srv.codec.Decode(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired
		}

		return nil, domainerrors.ErrTokenMalformed
	}

	if claims.Kind != entity.TokenKindAccess {
		return nil, domainerrors.ErrWrongTokenKind
	}

	if len(allowed) > 0 && !entity.Roles(allowed).Contains(claims.Role) {
		return nil, domainerrors.ErrRoleForbidden
	}

	return &entity.Principal{
		UserID:      claims.Subject,
		Role:        claims.Role,
		AccessToken: token,
	}, nil
}

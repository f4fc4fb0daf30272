package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/repository"
	"tracker/internal/domain/service"
	"tracker/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	generatedPasswordLength = 12
	passwordAlphabet        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile loads the caller's account.
func (srv *userService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	return srv.findUser(ctx, userID, "failed to load profile")
}

// GetUser loads any account by ID.
func (srv *userService) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	return srv.findUser(ctx, userID, "failed to load user")
}

func (srv *userService) findUser(ctx context.Context, userID int64, failure string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, failure)
	}

	return user, nil
}

// ListUsers returns every account.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// CreateUser registers an account named after its email, with a generated password and one role.
// Checks run in order: email present, email unused, role given, role exists.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, domainerrors.ErrMalformedPayload.WithMessage("Error : Email is required")
	}

	_, err := srv.userRepo.FindByUsername(ctx, input.Email)
	switch {
	case err == nil:
		return nil, domainerrors.ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to check email")
	}

	if input.Role == "" {
		return nil, domainerrors.ErrRoleRequired
	}
	exists, err := srv.userRepo.GroupExists(ctx, input.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check role")
	}
	if !exists {
		return nil, domainerrors.ErrRoleNotFound.WithMessage(fmt.Sprintf("Error : Role '%s' does not exist", input.Role))
	}

	password, err := generatePassword(generatedPasswordLength)
	if err != nil {
		return nil, err
	}

	user, err := srv.RegisterUser(ctx, &usecase.RegisterUserInput{
		Username:    input.Email,
		Password:    password,
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Gender:      input.Gender,
		PhoneNumber: input.PhoneNumber,
		Groups:      []string{input.Role},
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			return nil, domainerrors.ErrEmailTaken
		}

		return nil, err
	}

	return &usecase.CreateUserOutput{User: user, GeneratedPassword: password}, nil
}

// DeleteUser removes the account. Tokens already issued to it stay valid until they expire.
func (srv *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("user_id", userID))

	return nil
}

// RegisterUser creates the account, any missing groups and the memberships atomically.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, domainerrors.ErrMalformedPayload.WithMessage("Error: username and password are required")
	}
	if input.Gender != nil && !input.Gender.IsValid() {
		return nil, domainerrors.ErrMalformedPayload.WithMessage("Error: gender must be M or F")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:    input.Username,
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Gender:      input.Gender,
		PhoneNumber: input.PhoneNumber,
		IsStaff:     input.IsStaff,
		IsActive:    true,
		Groups:      input.Groups,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := userRepo.EnsureGroups(ctx, input.Groups); err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user, hash); err != nil {
			return err
		}

		return userRepo.AssignGroups(ctx, user.ID, input.Groups)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role().String()),
	)

	return user, nil
}

func generatePassword(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(passwordAlphabet)))

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate password")
		}
		password[i] = passwordAlphabet[n.Int64()]
	}

	return string(password), nil
}

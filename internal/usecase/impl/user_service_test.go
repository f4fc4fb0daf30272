package impl

import (
	"context"
	"testing"

	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/repository"
	mockRepo "tracker/internal/mocks/repository"
	mockService "tracker/internal/mocks/service"
	"tracker/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixture struct {
	t         *testing.T
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockService.MockPasswordHasher
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)

	return &userServiceFixture{
		t:       t,
		service: NewUserService(UserServiceParams{
			TxManager: txManager,
			UserRepo:  userRepo,
			Hasher:    hasher,
			Logger:    newDiscardLogger(),
		}),
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
	}
}

// onExecute runs the transaction body against a factory prepared by setup.
func (fx *userServiceFixture) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(fx.t)
			setup(factory)

			return fn(factory)
		})
}

func TestUserService_GetProfile(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByID(ctx, int64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)

	user, err := fx.service.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUserService_GetProfileNotFound(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByID(ctx, int64(9)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetProfile(ctx, 9)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_GetProfileDatabaseError(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByID(ctx, int64(1)).Return(nil, errors.New("db error"))

	_, err := fx.service.GetProfile(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}

func TestUserService_RegisterUser(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()
	gender := entity.GenderFemale
	groups := []string{"Tester", "Developer"}

	fx.hasher.EXPECT().Hash("s3cret").Return("hashed", nil)
	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		factory.EXPECT().UserRepo().Return(fx.userRepo)
		fx.userRepo.EXPECT().EnsureGroups(ctx, groups).Return(nil)
		fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User"), "hashed").
			RunAndReturn(func(_ context.Context, user *entity.User, _ string) error {
				user.ID = 7

				return nil
			})
		fx.userRepo.EXPECT().AssignGroups(ctx, int64(7), groups).Return(nil)
	})

	user, err := fx.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Username: "alice",
		Password: "s3cret",
		Email:    "alice@example.com",
		Gender:   &gender,
		Groups:   groups,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.IsActive)
	assert.Equal(t, entity.RoleDeveloper, user.Role())
}

func TestUserService_RegisterUserDuplicate(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		factory.EXPECT().UserRepo().Return(fx.userRepo)
		fx.userRepo.EXPECT().EnsureGroups(ctx, []string(nil)).Return(nil)
		fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User"), "hashed").
			Return(domainerrors.ErrUserAlreadyExists.WrapMessage("username alice"))
	})

	_, err := fx.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "alice", Password: "pw"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_RegisterUserValidation(t *testing.T) {
	invalid := entity.Gender("X")

	tests := []struct {
		name  string
		input *usecase.RegisterUserInput
	}{
		{name: "missing username", input: &usecase.RegisterUserInput{Username: "  ", Password: "pw"}},
		{name: "missing password", input: &usecase.RegisterUserInput{Username: "alice"}},
		{name: "invalid gender", input: &usecase.RegisterUserInput{Username: "alice", Password: "pw", Gender: &invalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newUserServiceFixture(t)

			_, err := fx.service.RegisterUser(context.Background(), tt.input)
			assert.True(t, errors.Is(err, domainerrors.ErrMalformedPayload))
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()
	users := []*entity.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob", Groups: []string{"Tester"}}}

	fx.userRepo.EXPECT().List(ctx).Return(users, nil)

	got, err := fx.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestUserService_GetUserNotFound(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByID(ctx, int64(42)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetUser(ctx, 42)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_CreateUser(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()
	gender := entity.GenderMale
	var password string

	fx.userRepo.EXPECT().FindByUsername(ctx, "bob@example.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().GroupExists(ctx, "Developer").Return(true, nil)
	fx.hasher.EXPECT().Hash(mock.AnythingOfType("string")).
		RunAndReturn(func(plain string) (string, error) {
			password = plain

			return "hashed", nil
		})
	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		factory.EXPECT().UserRepo().Return(fx.userRepo)
		fx.userRepo.EXPECT().EnsureGroups(ctx, []string{"Developer"}).Return(nil)
		fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User"), "hashed").
			RunAndReturn(func(_ context.Context, user *entity.User, _ string) error {
				assert.Equal(t, "bob@example.com", user.Username)
				assert.Equal(t, "bob@example.com", user.Email)
				user.ID = 11

				return nil
			})
		fx.userRepo.EXPECT().AssignGroups(ctx, int64(11), []string{"Developer"}).Return(nil)
	})

	output, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:     "bob@example.com",
		FirstName: "Bob",
		Gender:    &gender,
		Role:      "Developer",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), output.User.ID)
	assert.Equal(t, entity.RoleDeveloper, output.User.Role())
	assert.Len(t, output.GeneratedPassword, 12)
	assert.Equal(t, password, output.GeneratedPassword)
}

func TestUserService_CreateUserRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.CreateUserInput
		setup   func(fx *userServiceFixture)
		target  error
		message string
	}{
		{
			name:    "missing email",
			input:   &usecase.CreateUserInput{Email: " ", Role: "Tester"},
			target:  domainerrors.ErrMalformedPayload,
			message: "Error : Email is required",
		},
		{
			name:  "email taken",
			input: &usecase.CreateUserInput{Email: "alice@example.com", Role: "Tester"},
			setup: func(fx *userServiceFixture) {
				fx.userRepo.EXPECT().FindByUsername(mock.Anything, "alice@example.com").Return(&entity.User{ID: 1}, nil)
			},
			target:  domainerrors.ErrEmailTaken,
			message: "Error : User with this email already exists",
		},
		{
			name:  "missing role",
			input: &usecase.CreateUserInput{Email: "bob@example.com"},
			setup: func(fx *userServiceFixture) {
				fx.userRepo.EXPECT().FindByUsername(mock.Anything, "bob@example.com").Return(nil, repository.ErrUserNotFound)
			},
			target:  domainerrors.ErrRoleRequired,
			message: "Error : Please Select a role for the User",
		},
		{
			name:  "unknown role",
			input: &usecase.CreateUserInput{Email: "bob@example.com", Role: "Janitor"},
			setup: func(fx *userServiceFixture) {
				fx.userRepo.EXPECT().FindByUsername(mock.Anything, "bob@example.com").Return(nil, repository.ErrUserNotFound)
				fx.userRepo.EXPECT().GroupExists(mock.Anything, "Janitor").Return(false, nil)
			},
			target:  domainerrors.ErrRoleNotFound,
			message: "Error : Role 'Janitor' does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newUserServiceFixture(t)
			if tt.setup != nil {
				tt.setup(fx)
			}

			_, err := fx.service.CreateUser(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.message, appErr.Message())
		})
	}
}

func TestUserService_CreateUserRaceOnEmail(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "bob@example.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().GroupExists(ctx, "Tester").Return(true, nil)
	fx.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed", nil)
	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		factory.EXPECT().UserRepo().Return(fx.userRepo)
		fx.userRepo.EXPECT().EnsureGroups(ctx, []string{"Tester"}).Return(nil)
		fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User"), "hashed").
			Return(domainerrors.ErrUserAlreadyExists.WrapMessage("username already exists"))
	})

	_, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{Email: "bob@example.com", Role: "Tester"})
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestUserService_DeleteUser(t *testing.T) {
	fx := newUserServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().Delete(ctx, int64(3)).Return(nil)
	fx.userRepo.EXPECT().Delete(ctx, int64(4)).Return(repository.ErrUserNotFound)

	require.NoError(t, fx.service.DeleteUser(ctx, 3))
	assert.True(t, errors.Is(fx.service.DeleteUser(ctx, 4), domainerrors.ErrUserNotFound))
}

func TestGeneratePassword(t *testing.T) {
	password, err := generatePassword(generatedPasswordLength)
	require.NoError(t, err)

	assert.Len(t, password, generatedPasswordLength)
	for _, r := range password {
		assert.Contains(t, passwordAlphabet, string(r))
	}
}

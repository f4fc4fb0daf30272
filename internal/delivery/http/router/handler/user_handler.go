package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/delivery/http/response"
	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves account endpoints behind the request gate.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

type meResponse struct {
	ProfileResponse

	Role string `json:"role"`
}

// GetMe returns the caller's profile. The role is the one carried by the access token.
func (h *UserHandler) GetMe(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrMissingAuthHeader
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "User retrieved successfully", meResponse{
		ProfileResponse: newProfileResponse(user),
		Role:            principal.Role.String(),
	})
}

var createUserKeys = []string{"email", "first_name", "last_name", "phone_number", "gender", "role"}

type createUserRequest struct {
	Email       string `json:"email" validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender" validate:"omitempty,oneof=M F"`
	Role        string `json:"role"`
}

type userListItem struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	IsStaff     bool           `json:"is_staff"`
	PhoneNumber string         `json:"phone_number"`
	Gender      *entity.Gender `json:"gender"`
	Role        *string        `json:"role"`
}

type createdUserResponse struct {
	ID                int64          `json:"id"`
	Username          string         `json:"username"`
	Email             string         `json:"email"`
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	PhoneNumber       string         `json:"phone_number"`
	Gender            *entity.Gender `json:"gender"`
	Role              string         `json:"role"`
	GeneratedPassword string         `json:"generated_password"`
}

// ListUsers returns the directory. A user without groups has a null role.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]userListItem, 0, len(users))
	for _, user := range users {
		var role *string
		if r := user.Role(); r != entity.RoleNone {
			name := r.String()
			role = &name
		}

		items = append(items, userListItem{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			IsStaff:     user.IsStaff,
			PhoneNumber: user.PhoneNumber,
			Gender:      user.Gender,
			Role:        role,
		})
	}

	return response.Success(c, http.StatusOK, "Users retrieved successfully", items)
}

// CreateUser registers an account with a generated password. The password is only ever shown here.
func (h *UserHandler) CreateUser(c echo.Context) error {
	payload, err := bindPayload(c, createUserKeys, []string{"role"})
	if err != nil {
		return err
	}

	req := createUserRequest{
		Email:       *payload["email"],
		FirstName:   *payload["first_name"],
		LastName:    *payload["last_name"],
		PhoneNumber: *payload["phone_number"],
		Gender:      *payload["gender"],
	}
	if payload["role"] != nil {
		req.Role = *payload["role"]
	}

	if err := c.Validate(&req); err != nil {
		return createUserValidationError(err)
	}

	var gender *entity.Gender
	if req.Gender != "" {
		g := entity.Gender(req.Gender)
		gender = &g
	}

	output, err := h.userUC.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      gender,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	user := output.User

	return response.Success(c, http.StatusCreated, "User created successfully", createdUserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		PhoneNumber:       user.PhoneNumber,
		Gender:            user.Gender,
		Role:              req.Role,
		GeneratedPassword: output.GeneratedPassword,
	})
}

// GetUser returns a single account.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "User retrieved successfully", newProfileResponse(user))
}

// DeleteUser removes an account and answers with an empty 204.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// userIDParam parses the :id segment. Anything that is not an ID cannot name a user.
func userIDParam(c echo.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, domainerrors.ErrUserNotFound
	}

	return userID, nil
}

func createUserValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domainerrors.ErrMalformedPayload
	}

	switch fieldErrs[0].Field() {
	case "email":
		return malformed("Error : Email is required")
	case "gender":
		return malformed("Error : Gender must be M or F")
	default:
		return malformed("Error : Invalid " + fieldErrs[0].Field())
	}
}

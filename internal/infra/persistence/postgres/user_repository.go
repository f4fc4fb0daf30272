// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"slices"

	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/repository"
	"tracker/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, group names included.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return repo.withGroups(ctx, &userM)
}

// FindByUsername retrieves a single user by their username, group names included.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	userM, err := repo.findModelByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return repo.withGroups(ctx, userM)
}

// FindCredential returns the user and the stored password hash.
func (repo *userRepository) FindCredential(ctx context.Context, username string) (*entity.Credential, error) {
	userM, err := repo.findModelByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user, err := repo.withGroups(ctx, userM)
	if err != nil {
		return nil, err
	}

	return &entity.Credential{User: user, PasswordHash: userM.PasswordHash}, nil
}

// Create persists a new user. Group memberships are assigned separately.
func (repo *userRepository) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	userM := fromUserDomain(user)
	userM.PasswordHash = passwordHash

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username already exists")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid gender value")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// EnsureGroups inserts the named groups, skipping the ones that already exist.
func (repo *userRepository) EnsureGroups(ctx context.Context, names []string) error {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil
	}

	groups := make([]model.GroupModel, 0, len(names))
	for _, name := range names {
		groups = append(groups, model.GroupModel{Name: name})
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&groups).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to ensure groups")
	}

	return nil
}

// AssignGroups replaces the memberships of a user. Order of names becomes assignment order.
func (repo *userRepository) AssignGroups(ctx context.Context, userID int64, names []string) error {
	db := repo.db.WithContext(ctx)
	names = uniqueNames(names)

	var groups []model.GroupModel
	if err := db.Where("name IN ?", names).Find(&groups).Error; err != nil {
		return errors.Wrap(err, "failed to load groups")
	}

	idByName := make(map[string]int64, len(groups))
	for _, group := range groups {
		idByName[group.Name] = group.ID
	}

	links := make([]model.UserGroupModel, 0, len(names))
	for _, name := range names {
		groupID, ok := idByName[name]
		if !ok {
			return errors.Errorf("group %q does not exist", name)
		}
		links = append(links, model.UserGroupModel{UserID: userID, GroupID: groupID})
	}

	if err := db.Where("user_id = ?", userID).Delete(&model.UserGroupModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear user groups")
	}
	if len(links) == 0 {
		return nil
	}

	if err := db.Create(&links).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to assign user groups")
	}

	return nil
}

// List returns all users ordered by ID. Memberships are loaded with a single query.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	db := repo.db.WithContext(ctx)

	var userMs []model.UserModel
	if err := db.Order("id").Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	if len(userMs) == 0 {
		return []*entity.User{}, nil
	}

	ids := make([]int64, 0, len(userMs))
	for i := range userMs {
		ids = append(ids, userMs[i].ID)
	}

	var memberships []struct {
		UserID int64
		Name   string
	}
	err := db.Model(&model.UserGroupModel{}).
		Select("user_groups.user_id, groups.name").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("user_groups.user_id IN ?", ids).
		Order("user_groups.id").
		Scan(&memberships).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user groups")
	}

	groupsByUser := make(map[int64][]string, len(userMs))
	for _, m := range memberships {
		groupsByUser[m.UserID] = append(groupsByUser[m.UserID], m.Name)
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		user := toUserDomain(&userMs[i])
		user.Groups = groupsByUser[user.ID]
		users = append(users, user)
	}

	return users, nil
}

// Delete removes the user row. Memberships go with it through the cascading foreign key.
func (repo *userRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// GroupExists reports whether the named group exists.
func (repo *userRepository) GroupExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.GroupModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check group")
	}

	return count > 0, nil
}

func (repo *userRepository) findModelByUsername(ctx context.Context, username string) (*model.UserModel, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return &userM, nil
}

func (repo *userRepository) withGroups(ctx context.Context, userM *model.UserModel) (*entity.User, error) {
	var names []string
	err := repo.db.WithContext(ctx).
		Model(&model.GroupModel{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userM.ID).
		Order("user_groups.id").
		Pluck("groups.name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user groups")
	}

	user := toUserDomain(userM)
	user.Groups = names

	return user, nil
}

// uniqueNames drops repeated group names, keeping the first occurrence.
func uniqueNames(names []string) []string {
	if len(names) == 0 {
		return names
	}

	unique := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(unique, name) {
			unique = append(unique, name)
		}
	}

	return unique
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	var gender *entity.Gender
	if data.Gender != nil {
		g := entity.Gender(*data.Gender)
		gender = &g
	}

	return &entity.User{
		ID:          data.ID,
		Username:    data.Username,
		Email:       data.Email,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Gender:      gender,
		PhoneNumber: data.PhoneNumber,
		IsStaff:     data.IsStaff,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	var gender *string
	if data.Gender != nil {
		g := string(*data.Gender)
		gender = &g
	}

	return &model.UserModel{
		ID:          data.ID,
		Username:    data.Username,
		Email:       data.Email,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Gender:      gender,
		PhoneNumber: data.PhoneNumber,
		IsStaff:     data.IsStaff,
		IsActive:    data.IsActive,
	}
}

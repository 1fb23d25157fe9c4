package postgres

import (
	"context"

	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/repository"
	"habitly/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
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

// Create persists a new account. Uniqueness violations on username or email
// surface as repository.ErrDuplicateUser so the application layer can run
// its find-or-create retry without knowing about database error codes.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate the generated ID and timestamps back to the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByUsername retrieves a single account by its login identifier.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// ExistsByUsername reports whether the username is already taken.
func (repo *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check username existence")
	}

	return count > 0, nil
}

// ExistsByNickname reports whether the nickname is already taken.
func (repo *userRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("nickname = ?", nickname).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check nickname existence")
	}

	return count > 0, nil
}

// List returns all accounts, newest first.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for _, userM := range models {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		Nickname:     data.Nickname,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		Provider:     entity.ProviderType(data.Provider),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		Nickname:     data.Nickname,
		PasswordHash: data.PasswordHash,
		Role:         string(data.Role),
		Provider:     string(data.Provider),
	}
}

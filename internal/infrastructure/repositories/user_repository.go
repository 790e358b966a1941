package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/blogsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByPhone implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository. Save touches UpdatedAt, which the
// login failure counter relies on for its same-day check.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Save(dbUser).Error; err != nil {
		return err
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// List implements domain.UserRepository.
func (r *UserRepositoryImpl) List(ctx context.Context, skip, take int) ([]domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(take).
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *userToDomain(&dbUsers[i]))
	}
	return users, nil
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:              user.ID,
		Phone:           user.Phone,
		PasswordHash:    user.PasswordHash,
		Role:            user.Role,
		Status:          user.Status,
		ErrorLoginCount: user.ErrorLoginCount,
		RefreshToken:    user.RefreshToken,
		CreatedAt:       user.CreatedAt,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:              dbUser.ID,
		Phone:           dbUser.Phone,
		PasswordHash:    dbUser.PasswordHash,
		Role:            dbUser.Role,
		Status:          dbUser.Status,
		ErrorLoginCount: dbUser.ErrorLoginCount,
		RefreshToken:    dbUser.RefreshToken,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
}

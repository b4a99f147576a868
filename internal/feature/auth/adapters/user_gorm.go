// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/auth/usecase"
)

// userGorm is a GORM implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm with the given gorm.DB connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create adds a user to the database.
// Unique-key conflicts are mapped to usecase.ErrUsernameTaken or usecase.ErrEmailTaken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return duplicateKeyError(err)
		}
		return err
	}
	return nil
}

// FindByUsername retrieves a user by username.
// Returns usecase.ErrUserNotFound when no such user exists.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// Returns usecase.ErrUserNotFound when no such user exists.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UsernameTaken reports whether a user with the username exists.
// Satisfies forms.UniquenessChecker.
func (r *userGorm) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether a user with the email exists.
// Satisfies forms.UniquenessChecker.
func (r *userGorm) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// UpdateLastSeen sets the user's last-seen timestamp.
func (r *userGorm) UpdateLastSeen(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("last_seen", at).Error
}

// UpdateProfile persists a profile edit (username and about-me) in one statement.
// A rename onto an existing username is mapped to usecase.ErrUsernameTaken.
func (r *userGorm) UpdateProfile(ctx context.Context, id uint, username, aboutMe string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"username": username,
			"about_me": aboutMe,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return usecase.ErrUsernameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Updates with unchanged values still affects the row on MySQL, so
		// zero rows means the user does not exist.
		var count int64
		if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrUserNotFound
		}
	}
	return nil
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// GORM translates these to gorm.ErrDuplicatedKey; the raw MySQL 1062 is kept
// as a fallback for untranslated drivers.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// duplicateKeyError maps a duplicate-key error to the field-specific sentinel
// by inspecting which unique index the driver reports.
func duplicateKeyError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "email") {
		return usecase.ErrEmailTaken
	}
	return usecase.ErrUsernameTaken
}

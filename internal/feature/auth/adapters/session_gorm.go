package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/auth/usecase"
)

// sessionGorm is a GORM implementation of the SessionRepository interface.
// It backs sessions and their flash queues when Redis is unavailable.
type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionRepository.
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a new instance of sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Create persists a new session to the database.
func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	model := SessionModelFromEntity(session)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID retrieves a session by its ID.
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Revoke marks a session as revoked by its ID.
func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", now)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes all expired sessions and their flash queues.
func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	var expired []SessionModel
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("expires_at < ?", time.Now()).
		Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, len(expired))
	for i, s := range expired {
		ids[i] = s.ID
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", ids).Delete(&FlashModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&SessionModel{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

// PushFlash appends a flash message to the session's queue.
func (r *sessionGorm) PushFlash(ctx context.Context, sessionID, message string) error {
	flash := &FlashModel{SessionID: sessionID, Message: message}
	return r.db.WithContext(ctx).Create(flash).Error
}

// DrainFlashes returns and deletes the session's queued messages, oldest first.
// The read and the delete run in one transaction so a message is shown once.
func (r *sessionGorm) DrainFlashes(ctx context.Context, sessionID string) ([]string, error) {
	var messages []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flashes []FlashModel
		if err := tx.Where("session_id = ?", sessionID).
			Order("id ASC").
			Find(&flashes).Error; err != nil {
			return err
		}
		if len(flashes) == 0 {
			return nil
		}
		ids := make([]uint, len(flashes))
		messages = make([]string, len(flashes))
		for i, f := range flashes {
			ids[i] = f.ID
			messages[i] = f.Message
		}
		return tx.Where("id IN ?", ids).Delete(&FlashModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

package storage

import (
	"context"
	"errors"
	"time"

	"tg-moderator/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownUser is returned when a message log append references a user
// without an existing UserRecord.
var ErrUnknownUser = errors.New("user record does not exist")

// ViolationRepository handles database operations for UserRecord and
// MessageLog. It is the single write path for the violation counter.
type ViolationRepository struct {
	db *gorm.DB
}

// NewViolationRepository creates a new ViolationRepository
func NewViolationRepository(db *gorm.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

// MigrateTables ensures the UserRecord and MessageLog tables exist
func (r *ViolationRepository) MigrateTables() error {
	return r.db.AutoMigrate(&models.UserRecord{}, &models.MessageLog{})
}

// GetViolationCount returns the user's violation count, 0 for unknown users.
func (r *ViolationRepository) GetViolationCount(ctx context.Context, userID int64) (int, error) {
	var record models.UserRecord
	result := r.db.WithContext(ctx).First(&record, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return record.ViolationCount, nil
}

// RecordViolation creates the user record if absent (count 1 for a toxic
// message, 0 otherwise) and increments the counter by exactly one for a
// toxic message from a known user. A non-toxic message never changes the
// counter. The increment runs as a single upsert so concurrent messages
// from the same user cannot lose updates.
func (r *ViolationRepository) RecordViolation(ctx context.Context, userID int64, username string, isToxic bool) error {
	count := 0
	if isToxic {
		count = 1
	}

	record := models.UserRecord{
		UserID:         userID,
		Username:       username,
		ViolationCount: count,
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}
	if isToxic {
		conflict = clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"violation_count": gorm.Expr("violation_count + 1"),
				"username":        username,
				"updated_at":      time.Now(),
			}),
		}
	}

	return r.db.WithContext(ctx).Clauses(conflict).Create(&record).Error
}

// AppendMessageLog appends one audit entry for a processed message.
// Returns ErrUnknownUser if no UserRecord exists for the user; the entry
// is committed before returning.
func (r *ViolationRepository) AppendMessageLog(ctx context.Context, userID int64, username, messageText string, isToxic bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.UserRecord{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrUnknownUser
		}

		entry := models.MessageLog{
			Timestamp:   time.Now(),
			UserID:      userID,
			Username:    username,
			MessageText: messageText,
			IsToxic:     isToxic,
		}
		return tx.Create(&entry).Error
	})
}

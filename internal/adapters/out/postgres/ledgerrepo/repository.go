package ledgerrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransitionLedger implements ports.TransitionLedger using GORM.
// Duplicate keys are detected through gorm.ErrDuplicatedKey, so the
// connection must be opened with gorm.Config{TranslateError: true}.
type GormTransitionLedger struct {
	db *gorm.DB
}

func NewGormTransitionLedger(db *gorm.DB) *GormTransitionLedger {
	return &GormTransitionLedger{db: db}
}

// Add inserts a new entry.
func (r *GormTransitionLedger) Add(ctx context.Context, entry ports.LedgerEntry) error {
	if err := validate(entry); err != nil {
		return err
	}

	dto := fromDomain(entry)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrIdempotencyKeyTaken
	}
	return err
}

// Get retrieves an entry by idempotency key.
func (r *GormTransitionLedger) Get(ctx context.Context, key string) (ports.LedgerEntry, error) {
	var dto LedgerEntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.LedgerEntry{}, errs.NewObjectNotFoundError("idempotencyKey", key)
		}
		return ports.LedgerEntry{}, err
	}

	return toDomain(dto)
}

// Update saves the state and result of an existing entry.
func (r *GormTransitionLedger) Update(ctx context.Context, entry ports.LedgerEntry) error {
	if err := validate(entry); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).Model(&LedgerEntryDTO{}).
		Where("idempotency_key = ?", dto.IdempotencyKey).
		Updates(map[string]any{
			"state":          dto.State,
			"result_status":  dto.ResultStatus,
			"result_message": dto.ResultMessage,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("idempotencyKey", entry.IdempotencyKey)
	}
	return nil
}

// Delete removes an entry. Deleting a missing key is not an error.
func (r *GormTransitionLedger) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("idempotency_key = ?", key).Delete(&LedgerEntryDTO{}).Error
}

// DeleteOlderThan removes entries created before cutoff.
func (r *GormTransitionLedger) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&LedgerEntryDTO{})
	return result.RowsAffected, result.Error
}

func validate(e ports.LedgerEntry) error {
	var problems []error
	if err := e.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(e.IdempotencyKey) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("idempotencyKey"))
	}
	if err := e.OrderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if e.State != ports.LedgerPending && e.State != ports.LedgerCompleted {
		problems = append(problems, errs.NewValueIsInvalidError("state"))
	}
	return errors.Join(problems...)
}

package otprepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormOTPAttemptStore implements ports.OTPAttemptStore using GORM.
type GormOTPAttemptStore struct {
	db *gorm.DB
}

func NewGormOTPAttemptStore(db *gorm.DB) *GormOTPAttemptStore {
	return &GormOTPAttemptStore{db: db}
}

func (r *GormOTPAttemptStore) AddFailure(ctx context.Context, attempt ports.OTPAttempt) error {
	if err := errors.Join(attempt.ID.Validate(), attempt.OrderID.Validate()); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOTPAttemptStore) CountFailuresSince(ctx context.Context, id kernel.OrderID, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OTPAttemptDTO{}).
		Where("order_id = ? AND attempted_at >= ?", id.String(), since.UTC()).
		Count(&count).Error
	return int(count), err
}

func (r *GormOTPAttemptStore) Clear(ctx context.Context, id kernel.OrderID) error {
	return r.db.WithContext(ctx).Where("order_id = ?", id.String()).Delete(&OTPAttemptDTO{}).Error
}

func (r *GormOTPAttemptStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("attempted_at < ?", cutoff.UTC()).Delete(&OTPAttemptDTO{})
	return result.RowsAffected, result.Error
}

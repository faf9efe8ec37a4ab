// Package otprepo persists rejected delivery OTP submissions.
package otprepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

type OTPAttemptDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     string    `gorm:"size:64;not null;index:idx_otp_attempts_order_time,priority:1"`
	AttemptedAt time.Time `gorm:"not null;index:idx_otp_attempts_order_time,priority:2"`
}

func (OTPAttemptDTO) TableName() string {
	return "otp_attempts"
}

func fromDomain(a ports.OTPAttempt) OTPAttemptDTO {
	return OTPAttemptDTO{
		ID:          a.ID.Bytes(),
		OrderID:     a.OrderID.String(),
		AttemptedAt: a.AttemptedAt.UTC(),
	}
}

func toDomain(dto OTPAttemptDTO) (ports.OTPAttempt, error) {
	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return ports.OTPAttempt{}, err
	}
	return ports.OTPAttempt{
		ID:          kernel.MustUUID(dto.ID),
		OrderID:     orderID,
		AttemptedAt: dto.AttemptedAt,
	}, nil
}

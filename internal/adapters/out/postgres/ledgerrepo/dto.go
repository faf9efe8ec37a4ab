// Package ledgerrepo persists the idempotency ledger of order transitions.
package ledgerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

// LedgerEntryDTO is one row of the transition_ledger table. The idempotency
// key is unique; a second insert with the same key fails.
type LedgerEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	IdempotencyKey string    `gorm:"size:128;not null;uniqueIndex"`
	OrderID        string    `gorm:"size:64;not null;index"`
	Action         int       `gorm:"not null"`
	State          string    `gorm:"size:16;not null"`
	ResultStatus   int
	ResultMessage  string
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (LedgerEntryDTO) TableName() string {
	return "transition_ledger"
}

func fromDomain(e ports.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:             e.ID.Bytes(),
		IdempotencyKey: e.IdempotencyKey,
		OrderID:        e.OrderID.String(),
		Action:         int(e.Action),
		State:          string(e.State),
		ResultStatus:   int(e.ResultStatus),
		ResultMessage:  e.ResultMessage,
		CreatedAt:      e.CreatedAt.UTC(),
		UpdatedAt:      e.UpdatedAt.UTC(),
	}
}

func toDomain(dto LedgerEntryDTO) (ports.LedgerEntry, error) {
	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return ports.LedgerEntry{}, err
	}

	return ports.LedgerEntry{
		ID:             kernel.MustUUID(dto.ID),
		IdempotencyKey: dto.IdempotencyKey,
		OrderID:        orderID,
		Action:         order.Action(dto.Action),
		State:          ports.LedgerState(dto.State),
		ResultStatus:   order.Status(dto.ResultStatus),
		ResultMessage:  dto.ResultMessage,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	}, nil
}

package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderActionHistoryQueryHandler reads the transition ledger directly.
//
// Example:
//
//	handler := NewGetOrderActionHistoryQueryHandler(db)
//	query, _ := NewGetOrderActionHistoryQuery("SO-1001")
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, h := range history {
//	    fmt.Printf("%s %s %s\n", h.CreatedAt, h.Action, h.State)
//	}
type GetOrderActionHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderActionHistoryQueryHandler(db *gorm.DB) GetOrderActionHistoryQueryHandler {
	return GetOrderActionHistoryQueryHandler{db: db}
}

// Handle returns the entries of the order, oldest first.
func (h GetOrderActionHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderActionHistoryQuery,
) ([]GetOrderActionHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderActionHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			idempotency_key,
			action,
			state,
			result_status,
			result_message,
			created_at,
			updated_at
		FROM transition_ledger
		WHERE order_id = ?
		ORDER BY created_at, idempotency_key
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp          GetOrderActionHistoryQueryResponse
			action        int
			resultStatus  sql.NullInt64
			resultMessage sql.NullString
		)

		err = rows.Scan(
			&resp.IdempotencyKey,
			&action,
			&resp.State,
			&resultStatus,
			&resultMessage,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.Action = order.Action(action)
		resp.ResultStatus = order.Status(resultStatus.Int64)
		resp.ResultMessage = resultMessage.String
		history = append(history, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

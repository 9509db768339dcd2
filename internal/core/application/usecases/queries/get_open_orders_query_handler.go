package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
)

// GetOpenOrdersQueryHandler retrieves the bidding feed from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders in bidding status,
// newest first, each with the current size of its bid book.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.store_id,
			o.product_name,
			o.product_price,
			o.fee_ceiling,
			o.delivery_address,
			o.client_name,
			COUNT(b.id) AS bids_count,
			o.created_at
		FROM orders o
		LEFT JOIN bids b ON b.order_id = o.id
		WHERE o.status = 'BIDDING'
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetOpenOrdersQueryResponse
		var id, storeID uuid.UUID
		var productPrice, feeCeiling decimal.Decimal

		err = rows.Scan(
			&id,
			&storeID,
			&response.ProductName,
			&productPrice,
			&feeCeiling,
			&response.DeliveryAddress,
			&response.ClientName,
			&response.BidsCount,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		ownerID, idErr := kernel.UUIDFromBytes(storeID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.StoreID = ownerID

		price, moneyErr := kernel.NewMoney(productPrice)
		if moneyErr != nil {
			return nil, moneyErr
		}
		response.ProductPrice = price

		ceiling, moneyErr := kernel.NewMoney(feeCeiling)
		if moneyErr != nil {
			return nil, moneyErr
		}
		response.FeeCeiling = ceiling

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

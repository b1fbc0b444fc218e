package appmax

import (
	"context"
	"encoding/json"
	"net/http"
)

// OrdersManager creates orders and manages their tracking codes and
// refunds.
type OrdersManager struct {
	gw *gateway
}

// Order is the caller-facing projection of a created order. Pointer fields
// are nil when the API omitted them.
type Order struct {
	ID           *int64
	Hash         *string
	Status       *string
	CustomerHash *string
	PaymentHash  *string
	Total        *float64
	CreatedAt    *string
	UpdatedAt    *string
}

// orderWire is the external DTO for a created order.
type orderWire struct {
	ID           *int64   `json:"id"`
	Hash         *string  `json:"hash"`
	Status       *string  `json:"status"`
	CustomerHash *string  `json:"customer_hash"`
	PaymentHash  *string  `json:"payment_hash"`
	Total        *float64 `json:"total"`
	CreatedAt    *string  `json:"created_at"`
	UpdatedAt    *string  `json:"updated_at"`
}

// Create validates and submits a new order.
func (m *OrdersManager) Create(ctx context.Context, input OrderInput) (*Order, error) {
	payload, err := validateCreateOrder(input)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "order", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	var wire orderWire
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, newErrorf(ErrCodeAPI, "decoding order response: %v", err)
		}
	}

	return translateOrder(&wire), nil
}

// AddTrackingCode attaches a shipment tracking code to an order. The API's
// data member is returned unchanged.
func (m *OrdersManager) AddTrackingCode(ctx context.Context, orderHash, trackingCode string) (json.RawMessage, error) {
	payload, err := validateTrackingCode(orderHash, trackingCode)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "order/tracking", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	return env.Data, nil
}

// Refund refunds an order. A nil opts or nil opts.Amount means a full
// refund. The API's data member is returned unchanged.
func (m *OrdersManager) Refund(ctx context.Context, orderHash string, opts *RefundOptions) (json.RawMessage, error) {
	payload, err := validateRefund(orderHash, opts)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "order/refund", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	return env.Data, nil
}

func translateOrder(w *orderWire) *Order {
	return &Order{
		ID:           w.ID,
		Hash:         w.Hash,
		Status:       w.Status,
		CustomerHash: w.CustomerHash,
		PaymentHash:  w.PaymentHash,
		Total:        w.Total,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

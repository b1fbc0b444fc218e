package appmax

import (
	"context"
	"encoding/json"
	"net/http"
)

// PaymentsManager creates payments, looks up installment plans, and
// tokenizes cards.
type PaymentsManager struct {
	gw *gateway
}

// Payment is the caller-facing projection of a created payment. Pointer
// fields are nil when the API omitted them.
type Payment struct {
	ID            *int64
	Hash          *string
	Status        *string
	OrderHash     *string
	Amount        *float64
	Installments  *int
	PaymentMethod *string
	CreatedAt     *string
	UpdatedAt     *string
}

// paymentWire is the external DTO for a created payment.
type paymentWire struct {
	ID            *int64   `json:"id"`
	Hash          *string  `json:"hash"`
	Status        *string  `json:"status"`
	OrderHash     *string  `json:"order_hash"`
	Amount        *float64 `json:"amount"`
	Installments  *int     `json:"installments"`
	PaymentMethod *string  `json:"payment_method"`
	CreatedAt     *string  `json:"created_at"`
	UpdatedAt     *string  `json:"updated_at"`
}

// Create validates and submits a payment for an existing order.
func (m *PaymentsManager) Create(ctx context.Context, input PaymentInput) (*Payment, error) {
	payload, err := validateCreatePayment(input)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "payment", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	var wire paymentWire
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, newErrorf(ErrCodeAPI, "decoding payment response: %v", err)
		}
	}

	return translatePayment(&wire), nil
}

// Installments looks up the available installment plans for an amount and
// card brand. The API's data member is returned unchanged.
func (m *PaymentsManager) Installments(ctx context.Context, amount float64, brand string) (json.RawMessage, error) {
	payload, err := validateInstallments(amount, brand)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "payment/installments", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	return env.Data, nil
}

// Tokenize exchanges raw card data for a reusable token. The card number
// is whitespace-stripped before submission; the API's data member is
// returned unchanged.
func (m *PaymentsManager) Tokenize(ctx context.Context, card CardInput) (json.RawMessage, error) {
	payload, err := validateTokenizeCard(card)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "payment/tokenize", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	return env.Data, nil
}

func translatePayment(w *paymentWire) *Payment {
	return &Payment{
		ID:            w.ID,
		Hash:          w.Hash,
		Status:        w.Status,
		OrderHash:     w.OrderHash,
		Amount:        w.Amount,
		Installments:  w.Installments,
		PaymentMethod: w.PaymentMethod,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

package appmax

import (
	"context"
	"encoding/json"
	"net/http"
)

// CustomersManager creates customer resources.
type CustomersManager struct {
	gw *gateway
}

// Customer is the caller-facing projection of a created customer. Pointer
// fields are nil when the API omitted them, so the output shape is stable
// across partial responses.
type Customer struct {
	ID             *int64
	Hash           *string
	FirstName      *string
	LastName       *string
	Email          *string
	Telephone      *string
	Address        *CustomerAddress
	DocumentNumber *string
	SiteID         *int64
	IP             *string
	CustomText     *string
	CreatedAt      *string
	UpdatedAt      *string
}

// CustomerAddress is present only when the API response carried a postcode.
type CustomerAddress struct {
	Postcode   *string
	Street     *string
	Number     *string
	Complement *string
	District   *string
	City       *string
	State      *string
	UF         *string
}

// customerWire is the external DTO for a created customer. Never exposed
// outside the translation step.
type customerWire struct {
	ID             *int64  `json:"id"`
	Hash           *string `json:"hash"`
	FirstName      *string `json:"firstname"`
	LastName       *string `json:"lastname"`
	Email          *string `json:"email"`
	Telephone      *string `json:"telephone"`
	Postcode       *string `json:"postcode"`
	Street         *string `json:"address_street"`
	Number         *string `json:"address_street_number"`
	Complement     *string `json:"address_street_complement"`
	District       *string `json:"address_street_district"`
	City           *string `json:"address_city"`
	State          *string `json:"address_state"`
	UF             *string `json:"uf"`
	DocumentNumber *string `json:"document_number"`
	SiteID         *int64  `json:"site_id"`
	IP             *string `json:"ip"`
	CustomText     *string `json:"custom_txt"`
	CreatedAt      *string `json:"created_at"`
	UpdatedAt      *string `json:"updated_at"`
}

// Create validates and submits a new customer. Validation failures return
// before any request is made.
func (m *CustomersManager) Create(ctx context.Context, input CustomerInput) (*Customer, error) {
	payload, err := validateCreateCustomer(input)
	if err != nil {
		return nil, err
	}

	env, err := m.gw.fetch(ctx, "customer", http.MethodPost, payload)
	if err != nil {
		return nil, err
	}

	var wire customerWire
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, newErrorf(ErrCodeAPI, "decoding customer response: %v", err)
		}
	}

	return translateCustomer(&wire), nil
}

// translateCustomer converts the external DTO to the caller-facing shape.
func translateCustomer(w *customerWire) *Customer {
	customer := &Customer{
		ID:             w.ID,
		Hash:           w.Hash,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		Email:          w.Email,
		Telephone:      w.Telephone,
		DocumentNumber: w.DocumentNumber,
		SiteID:         w.SiteID,
		IP:             w.IP,
		CustomText:     w.CustomText,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}

	if w.Postcode != nil {
		customer.Address = &CustomerAddress{
			Postcode:   w.Postcode,
			Street:     w.Street,
			Number:     w.Number,
			Complement: w.Complement,
			District:   w.District,
			City:       w.City,
			State:      w.State,
			UF:         w.UF,
		}
	}

	return customer
}

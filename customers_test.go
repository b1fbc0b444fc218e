package appmax

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the server saw for a single request.
type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

// newTestManagers starts a stub API server returning the given envelope body
// and wires all three managers to it.
func newTestManagers(t *testing.T, responseBody string) (*Client, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.method = r.Method
		recorded.path = r.URL.Path

		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &recorded.body)

		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	gw, err := newGateway(server.URL+"/", "test-key", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return &Client{
		Customers: &CustomersManager{gw: gw},
		Orders:    &OrdersManager{gw: gw},
		Payments:  &PaymentsManager{gw: gw},
		gw:        gw,
	}, recorded
}

func TestCustomersCreate(t *testing.T) {
	client, recorded := newTestManagers(t, `{
		"success": true,
		"data": {
			"id": 42,
			"hash": "cus_abc",
			"firstname": "Maria",
			"lastname": "Silva",
			"email": "maria@example.com",
			"postcode": "01310100",
			"address_city": "Sao Paulo"
		}
	}`)

	customer, err := client.Customers.Create(context.Background(), validCustomerInput())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.method)
	assert.Equal(t, "/customer", recorded.path)
	assert.Equal(t, "Maria", recorded.body["firstname"])
	assert.Equal(t, "test-key", recorded.body["access-token"])

	require.NotNil(t, customer.ID)
	assert.Equal(t, int64(42), *customer.ID)
	require.NotNil(t, customer.Hash)
	assert.Equal(t, "cus_abc", *customer.Hash)

	require.NotNil(t, customer.Address)
	require.NotNil(t, customer.Address.Postcode)
	assert.Equal(t, "01310100", *customer.Address.Postcode)
	require.NotNil(t, customer.Address.City)
	assert.Equal(t, "Sao Paulo", *customer.Address.City)
	assert.Nil(t, customer.Address.State)
}

func TestCustomersCreate_PartialResponse(t *testing.T) {
	client, _ := newTestManagers(t, `{"success": true, "data": {"id": 42, "hash": "cus_abc"}}`)

	customer, err := client.Customers.Create(context.Background(), validCustomerInput())
	require.NoError(t, err)

	require.NotNil(t, customer.ID)
	assert.Equal(t, int64(42), *customer.ID)

	// Everything the response omitted stays nil, including the address:
	// no postcode means no address block at all.
	assert.Nil(t, customer.FirstName)
	assert.Nil(t, customer.Email)
	assert.Nil(t, customer.SiteID)
	assert.Nil(t, customer.Address)
}

func TestCustomersCreate_ValidationFailsBeforeRequest(t *testing.T) {
	client, recorded := newTestManagers(t, `{"success": true}`)

	input := validCustomerInput()
	input.Email = "not-an-email"

	_, err := client.Customers.Create(context.Background(), input)
	requireAPIError(t, err, ErrCodeInvalidEmail)

	// The server was never contacted.
	assert.Empty(t, recorded.method)
}

func TestCustomersCreate_APIRejection(t *testing.T) {
	client, _ := newTestManagers(t, `{"success": false, "text": "Email already registered"}`)

	_, err := client.Customers.Create(context.Background(), validCustomerInput())

	apiErr := requireAPIError(t, err, ErrCodeAPI)
	assert.Equal(t, "Email already registered", apiErr.Message)
}

package freight_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickship/internal/adapters/out/freight"
	"quickship/internal/core/domain/model/shipment"
	"quickship/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuote() shipment.Quote {
	return shipment.Quote{
		CarrierServiceID: 11,
		CarrierName:      "Jadlog",
		ServiceName:      "Package",
		Price:            18.00,
		DeliveryDays:     4,
	}
}

func TestBookingClient_Submit_SendsCartPayload(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/me/cart", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		_, _ = w.Write([]byte(`{"id":"BKG-42"}`))
	}))
	defer server.Close()

	client, err := freight.NewBookingClient(server.URL, "test-key")
	require.NoError(t, err)

	ref, err := client.Submit(context.Background(), testShipmentRequest(), testQuote())

	require.NoError(t, err)
	assert.Equal(t, "BKG-42", ref)

	assert.InEpsilon(t, 11.0, captured["service"], 1e-9)
	to := captured["to"].(map[string]any)
	assert.Equal(t, "Maria Souza", to["name"])
	assert.Equal(t, "01310100", to["postal_code"])
	products := captured["products"].([]any)
	require.Len(t, products, 1)
	volumes := captured["volumes"].([]any)
	require.Len(t, volumes, 1)
}

func TestBookingClient_Submit_ReferenceShapes(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{"top level id", `{"id":"BKG-1"}`, "BKG-1"},
		{"numeric id", `{"id":9144}`, "9144"},
		{"nested data id", `{"data":{"id":"BKG-2"}}`, "BKG-2"},
		{"nested shipment id", `{"shipment":{"id":"BKG-3"}}`, "BKG-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client, err := freight.NewBookingClient(server.URL, "test-key")
			require.NoError(t, err)

			ref, err := client.Submit(context.Background(), testShipmentRequest(), testQuote())

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestBookingClient_Submit_MissingReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"queued"}`))
	}))
	defer server.Close()

	client, err := freight.NewBookingClient(server.URL, "test-key")
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), testShipmentRequest(), testQuote())

	require.ErrorIs(t, err, ports.ErrProviderFailure)
	assert.Contains(t, err.Error(), "booking reference missing")
}

func TestBookingClient_Submit_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client, err := freight.NewBookingClient(server.URL, "test-key")
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), testShipmentRequest(), testQuote())

	var providerErr *ports.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
	assert.Equal(t, "submit booking", providerErr.Op)
}

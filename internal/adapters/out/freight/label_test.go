package freight_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickship/internal/adapters/out/freight"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelClient_RequestLabel_URLResponse(t *testing.T) {
	orderID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/me/shipment/label", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, orderID.String(), req["order_id"])
		assert.Equal(t, "BKG-5", req["booking_ref"])

		_, _ = w.Write([]byte(`{"url":"https://labels.example.com/l/5.pdf"}`))
	}))
	defer server.Close()

	client, err := freight.NewLabelClient(server.URL, "test-key")
	require.NoError(t, err)

	result, err := client.RequestLabel(context.Background(), orderID, "BKG-5")

	require.NoError(t, err)
	assert.True(t, result.HasURL())
	assert.Equal(t, "https://labels.example.com/l/5.pdf", result.URL)
}

func TestLabelClient_RequestLabel_IDOnlyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"lbl-889"}`))
	}))
	defer server.Close()

	client, err := freight.NewLabelClient(server.URL, "test-key")
	require.NoError(t, err)

	result, err := client.RequestLabel(context.Background(), kernel.NewUUID(), "BKG-5")

	require.NoError(t, err)
	assert.False(t, result.HasURL())
	assert.True(t, result.HasID())
	assert.Equal(t, "lbl-889", result.LabelID)
}

func TestLabelClient_RequestLabel_AmbiguousPayloadKeptRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"processing","eta":"soon"}`))
	}))
	defer server.Close()

	client, err := freight.NewLabelClient(server.URL, "test-key")
	require.NoError(t, err)

	result, err := client.RequestLabel(context.Background(), kernel.NewUUID(), "BKG-5")

	require.NoError(t, err)
	assert.False(t, result.HasURL())
	assert.False(t, result.HasID())
	assert.False(t, result.IsEmpty())
	assert.Contains(t, result.Raw, "processing")
}

func TestLabelClient_RequestLabel_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	client, err := freight.NewLabelClient(server.URL, "test-key")
	require.NoError(t, err)

	result, err := client.RequestLabel(context.Background(), kernel.NewUUID(), "BKG-5")

	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}

func TestLabelClient_RequestLabel_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("label engine crashed"))
	}))
	defer server.Close()

	client, err := freight.NewLabelClient(server.URL, "test-key")
	require.NoError(t, err)

	_, err = client.RequestLabel(context.Background(), kernel.NewUUID(), "BKG-5")

	var providerErr *ports.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "request label", providerErr.Op)
	assert.Contains(t, providerErr.Body, "label engine crashed")
}

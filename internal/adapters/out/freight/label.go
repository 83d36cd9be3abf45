package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/shipment"
)

const labelPath = "/api/v2/me/shipment/label"

// LabelClient implements ports.LabelService against the label generation
// endpoint.
type LabelClient struct {
	client *Client
}

// NewLabelClient creates a label client.
func NewLabelClient(baseURL, apiKey string) (*LabelClient, error) {
	client, err := NewClient(baseURL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("label client: %w", err)
	}
	return &LabelClient{client: client}, nil
}

type labelRequest struct {
	OrderID    string `json:"order_id"`
	BookingRef string `json:"booking_ref"`
}

type labelResponse struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// RequestLabel asks the provider to generate a label for the booking. The
// response is mapped best-effort: a body that decodes to neither a URL nor
// an id is preserved raw and left to the caller to classify.
func (l *LabelClient) RequestLabel(
	ctx context.Context,
	orderID kernel.UUID,
	bookingRef string,
) (shipment.LabelResult, error) {
	payload, err := json.Marshal(labelRequest{
		OrderID:    orderID.String(),
		BookingRef: bookingRef,
	})
	if err != nil {
		return shipment.LabelResult{}, fmt.Errorf("marshal label request: %w", err)
	}

	req, err := l.client.newRequest(ctx, http.MethodPost, labelPath, bytes.NewReader(payload))
	if err != nil {
		return shipment.LabelResult{}, err
	}

	body, err := l.client.do("request label", req)
	if err != nil {
		return shipment.LabelResult{}, err
	}

	result := shipment.LabelResult{Raw: strings.TrimSpace(string(body))}

	var resp labelResponse
	if err = json.Unmarshal(body, &resp); err == nil {
		result.URL = resp.URL
		result.LabelID = resp.ID
	}

	return result, nil
}

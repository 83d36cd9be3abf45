package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"quickship/internal/core/domain/model/shipment"
	"quickship/internal/core/ports"
)

const cartPath = "/api/v2/me/cart"

// BookingClient implements ports.BookingService against the booking/cart
// endpoint.
type BookingClient struct {
	client *Client
}

// NewBookingClient creates a booking client.
func NewBookingClient(baseURL, apiKey string) (*BookingClient, error) {
	client, err := NewClient(baseURL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("booking client: %w", err)
	}
	return &BookingClient{client: client}, nil
}

type cartRequest struct {
	Service int              `json:"service"`
	From    cartParty        `json:"from"`
	To      cartParty        `json:"to"`
	Products []cartProduct   `json:"products"`
	Volumes []cartVolume     `json:"volumes"`
	Options calculateOptions `json:"options"`
}

type cartParty struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Document   string `json:"document"`
	Address    string `json:"address"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state_abbr"`
	PostalCode string `json:"postal_code"`
}

type cartProduct struct {
	ID           string  `json:"id"`
	Quantity     int     `json:"quantity"`
	UnitaryValue float64 `json:"unitary_value"`
}

type cartVolume struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
}

// cartResponse covers the reference shapes the provider is known to return:
// a top-level id, an id nested under data, or one nested under shipment.
type cartResponse struct {
	ID       any `json:"id"`
	Data     struct {
		ID any `json:"id"`
	} `json:"data"`
	Shipment struct {
		ID any `json:"id"`
	} `json:"shipment"`
}

// Submit books the shipment with the chosen quote and returns the provider's
// booking reference.
func (b *BookingClient) Submit(
	ctx context.Context,
	request shipment.Request,
	quote shipment.Quote,
) (string, error) {
	products := make([]cartProduct, 0, len(request.Items))
	for _, item := range request.Items {
		products = append(products, cartProduct{
			ID:           item.ProductID,
			Quantity:     item.Quantity,
			UnitaryValue: item.UnitPrice,
		})
	}

	payload, err := json.Marshal(cartRequest{
		Service:  quote.CarrierServiceID,
		From:     toCartParty(request.Origin),
		To:       toCartParty(request.Destination),
		Products: products,
		Volumes: []cartVolume{{
			Height: request.Parcel.HeightCm,
			Width:  request.Parcel.WidthCm,
			Length: request.Parcel.LengthCm,
			Weight: request.Parcel.WeightKg,
		}},
		Options: calculateOptions{InsuranceValue: request.DeclaredValue},
	})
	if err != nil {
		return "", fmt.Errorf("marshal cart request: %w", err)
	}

	req, err := b.client.newRequest(ctx, http.MethodPost, cartPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	body, err := b.client.do("submit booking", req)
	if err != nil {
		return "", err
	}

	var resp cartResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode cart response: %w", err)
	}

	for _, candidate := range []any{resp.ID, resp.Data.ID, resp.Shipment.ID} {
		if ref := referenceString(candidate); ref != "" {
			return ref, nil
		}
	}

	return "", &ports.ProviderError{
		Op:   "submit booking",
		Body: "booking reference missing from response",
	}
}

func toCartParty(party shipment.Party) cartParty {
	return cartParty{
		Name:       party.Name,
		Email:      party.Email,
		Phone:      party.Phone,
		Document:   party.TaxID,
		Address:    party.Street,
		Complement: party.Complement,
		City:       party.City,
		State:      party.State,
		PostalCode: party.PostalCode,
	}
}

// referenceString renders a reference that may arrive as a JSON string or
// number.
func referenceString(v any) string {
	switch ref := v.(type) {
	case string:
		return ref
	case float64:
		return strconv.FormatFloat(ref, 'f', -1, 64)
	default:
		return ""
	}
}

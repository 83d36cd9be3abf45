package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"quickship/internal/core/domain/model/shipment"
)

const calculatePath = "/api/v2/me/shipment/calculate"

// RateShopClient implements ports.RateShopper against the rate-shopping
// provider's calculate endpoint.
type RateShopClient struct {
	client *Client
}

// NewRateShopClient creates a rate-shopping client.
func NewRateShopClient(baseURL, apiKey string) (*RateShopClient, error) {
	client, err := NewClient(baseURL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("rate shop client: %w", err)
	}
	return &RateShopClient{client: client}, nil
}

type calculateRequest struct {
	From    calculateParty   `json:"from"`
	To      calculateParty   `json:"to"`
	Package calculatePackage `json:"package"`
	Options calculateOptions `json:"options"`
}

type calculateParty struct {
	PostalCode string `json:"postal_code"`
}

type calculatePackage struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
}

type calculateOptions struct {
	InsuranceValue float64 `json:"insurance_value"`
	Receipt        bool    `json:"receipt"`
	OwnHand        bool    `json:"own_hand"`
}

// quoteEntry is one option in the provider's response array. Price and
// delivery time arrive as strings or numbers depending on the carrier.
type quoteEntry struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Price        flexNumber   `json:"price"`
	DeliveryTime flexNumber   `json:"delivery_time"`
	Company      quoteCompany `json:"company"`
	Error        string       `json:"error"`
}

// flexNumber accepts both quoted and bare JSON numbers.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(data, `"`)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*n = 0
		return nil
	}

	var value float64
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*n = flexNumber(value)
	return nil
}

type quoteCompany struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GetQuotes requests freight options for the shipment. Entries the provider
// flags with an error field come back as errored quotes rather than failing
// the whole call.
func (r *RateShopClient) GetQuotes(
	ctx context.Context,
	request shipment.Request,
) ([]shipment.Quote, error) {
	payload, err := json.Marshal(calculateRequest{
		From:    calculateParty{PostalCode: request.Origin.PostalCode},
		To:      calculateParty{PostalCode: request.Destination.PostalCode},
		Package: calculatePackage{
			Height: request.Parcel.HeightCm,
			Width:  request.Parcel.WidthCm,
			Length: request.Parcel.LengthCm,
			Weight: request.Parcel.WeightKg,
		},
		Options: calculateOptions{InsuranceValue: request.DeclaredValue},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal calculate request: %w", err)
	}

	req, err := r.client.newRequest(ctx, http.MethodPost, calculatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	body, err := r.client.do("calculate quotes", req)
	if err != nil {
		return nil, err
	}

	var rawEntries []json.RawMessage
	if err = json.Unmarshal(body, &rawEntries); err != nil {
		return nil, fmt.Errorf("decode calculate response: %w", err)
	}

	quotes := make([]shipment.Quote, 0, len(rawEntries))
	for _, raw := range rawEntries {
		var entry quoteEntry
		if err = json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("decode quote entry: %w", err)
		}

		quote := shipment.Quote{
			CarrierServiceID: entry.ID,
			CarrierName:      entry.Company.Name,
			ServiceName:      entry.Name,
			Raw:              string(raw),
		}

		if entry.Error != "" {
			quote.Errored = true
			quote.ErrorMessage = entry.Error
			quotes = append(quotes, quote)
			continue
		}

		quote.Price = float64(entry.Price)
		quote.DeliveryDays = int(entry.DeliveryTime)
		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// Package oracle provides price source implementations. The HTTP source
// speaks the Hermes REST API; the static source serves fixed prices for
// local development.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Solation-Finance/solation/internal/core/ports"
)

const latestPricePath = "/v2/updates/price/latest"

// HermesSource fetches parsed price updates from a Hermes endpoint.
type HermesSource struct {
	baseURL string
	client  *http.Client
}

func NewHermesSource(baseURL string) *HermesSource {
	return &HermesSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type hermesPrice struct {
	Price       string `json:"price"`
	Expo        int32  `json:"expo"`
	PublishTime int64  `json:"publish_time"`
}

type hermesParsedUpdate struct {
	ID    string      `json:"id"`
	Price hermesPrice `json:"price"`
}

type hermesResponse struct {
	Parsed []hermesParsedUpdate `json:"parsed"`
}

func (h *HermesSource) GetPrice(
	ctx context.Context, feedID string,
) (*ports.PriceUpdate, error) {
	endpoint := fmt.Sprintf(
		"%s%s?ids[]=%s&parsed=true",
		h.baseURL, latestPricePath, url.QueryEscape(feedID),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching price update: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"price service returned status %d: %s", res.StatusCode, string(body),
		)
	}

	var parsed hermesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding price update: %w", err)
	}
	if len(parsed.Parsed) == 0 {
		return nil, fmt.Errorf("no price update for feed %s", feedID)
	}

	update := parsed.Parsed[0]
	price, err := strconv.ParseInt(update.Price.Price, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decoding price value: %w", err)
	}

	return &ports.PriceUpdate{
		FeedID:      update.ID,
		Price:       price,
		Expo:        update.Price.Expo,
		PublishTime: update.Price.PublishTime,
	}, nil
}

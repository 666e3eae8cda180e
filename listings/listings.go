// Package listings is the read-only pass-through to the marketplace listing
// endpoint, annotated with currency units from the network parameter table.
package listings

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/LendzLabs/nftfi-go/api"
	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/types"
)

const listingsEndpoint = "/v0.1/listings"

// Listing is an NFT listed for loan offers.
type Listing struct {
	NFTAddress      string        `json:"nftAddress"`
	TokenID         *types.Amount `json:"tokenId"`
	Borrower        string        `json:"borrower"`
	DesiredCurrency string        `json:"desiredCurrency,omitempty"`
	CurrencyUnit    string        `json:"currencyUnit,omitempty"`
	DesiredAmount   *types.Amount `json:"desiredAmount,omitempty"`
	ListedAt        string        `json:"listedAt,omitempty"`
}

// Service queries listings for one network.
type Service struct {
	api     *api.Client
	network *config.Network
	log     *slog.Logger
}

// NewService builds the listing query service.
func NewService(apiClient *api.Client, network *config.Network, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{api: apiClient, network: network, log: log}
}

// ListParams filter the listing query.
type ListParams struct {
	NFTAddress string
	Borrower   string
	Page       int
	Limit      int
}

type listResponse struct {
	Results []Listing `json:"results"`
}

// List fetches listings, attaching currency units by address match. Unknown
// currency addresses leave CurrencyUnit empty.
func (s *Service) List(ctx context.Context, params ListParams) ([]Listing, error) {
	q := url.Values{}
	if params.NFTAddress != "" {
		q.Set("nftAddress", params.NFTAddress)
	}
	if params.Borrower != "" {
		q.Set("borrower", params.Borrower)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = s.network.API.PageLimit
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	var resp listResponse
	if err := s.api.Get(ctx, listingsEndpoint, q, &resp); err != nil {
		return nil, fmt.Errorf("listings: list: %w", err)
	}
	for i := range resp.Results {
		listing := &resp.Results[i]
		if currency, ok := s.network.Currency(listing.DesiredCurrency); ok {
			listing.CurrencyUnit = currency.Unit
		}
	}
	return resp.Results, nil
}

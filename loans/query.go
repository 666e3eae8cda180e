package loans

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const loansEndpoint = "/v0.1/loans"

// ListParams filter the loan query. Zero values are omitted from the
// request; Limit falls back to the network's default page size.
type ListParams struct {
	Borrower     string
	Lender       string
	Status       string
	ContractName string
	Page         int
	Limit        int
}

type listResponse struct {
	Results []Loan `json:"results"`
}

// List queries loans from the REST backend, attaching the human-readable
// currency unit from the network currency registry to each record.
func (s *Service) List(ctx context.Context, params ListParams) ([]Loan, error) {
	q := url.Values{}
	if params.Borrower != "" {
		q.Set("borrower", params.Borrower)
	}
	if params.Lender != "" {
		q.Set("lender", params.Lender)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.ContractName != "" {
		q.Set("contractName", params.ContractName)
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
	if err := s.api.Get(ctx, loansEndpoint, q, &resp); err != nil {
		return nil, fmt.Errorf("loans: list: %w", err)
	}
	for i := range resp.Results {
		s.annotate(&resp.Results[i])
	}
	return resp.Results, nil
}

// Get fetches a single loan record by id.
func (s *Service) Get(ctx context.Context, id uint64) (*Loan, error) {
	var loan Loan
	endpoint := fmt.Sprintf("%s/%d", loansEndpoint, id)
	if err := s.api.Get(ctx, endpoint, nil, &loan); err != nil {
		return nil, fmt.Errorf("loans: get %d: %w", id, err)
	}
	s.annotate(&loan)
	return &loan, nil
}

// annotate attaches the currency unit by address match. Unknown addresses
// leave the field empty; this never fails.
func (s *Service) annotate(loan *Loan) {
	if currency, ok := s.network.Currency(loan.Currency); ok {
		loan.CurrencyUnit = currency.Unit
	}
}

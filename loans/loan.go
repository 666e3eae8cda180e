// Package loans is the loan action router: one entry point per verb, each
// dispatching on the caller-supplied contract version name to the matching
// adapter, plus the REST-backed read paths. The router holds no loan state;
// everything lives on-chain or in the API backend.
package loans

import (
	"github.com/LendzLabs/nftfi-go/types"
)

// Loan statuses as reported by the REST backend. The SDK never tracks or
// transitions these locally.
const (
	StatusEscrow     = "escrow"
	StatusDefaulted  = "defaulted"
	StatusRepaid     = "repaid"
	StatusLiquidated = "liquidated"
)

// FieldContractName is the validation error key for an unsupported contract
// version name.
const FieldContractName = "nftfi.contract.name"

// Loan is a loan record as returned by the REST backend. CurrencyUnit is
// attached client-side from the network currency registry; it stays empty
// when the currency address is not in the table.
type Loan struct {
	ID           uint64        `json:"id"`
	Borrower     string        `json:"borrower"`
	Lender       string        `json:"lender"`
	Status       string        `json:"status"`
	ContractName string        `json:"contractName"`
	Currency     string        `json:"currency"`
	CurrencyUnit string        `json:"currencyUnit,omitempty"`
	Principal    *types.Amount `json:"principal,omitempty"`
	Repayment    *types.Amount `json:"repayment,omitempty"`
	StartedAt    string        `json:"startedAt,omitempty"`
	DueAt        string        `json:"dueAt,omitempty"`
}

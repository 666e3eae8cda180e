package contracts

import (
	"log/slog"
	"math/big"

	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/offers"
	"github.com/LendzLabs/nftfi-go/types"
)

// NewFixedV1 adapts the original fixed-term loan contract. v1 takes a flat
// argument list rather than the tuple structs later versions use.
func NewFixedV1(backend Backend, deployment config.Contract, log *slog.Logger) Adapter {
	return &loanAdapter{
		name:       NameFixedV1,
		acceptName: "acceptOffer",
		pack:       packOfferV1,
		loanIDArg:  uint256LoanID,
		binding:    newBinding(backend, deployment),
		log:        log,
	}
}

func packOfferV1(offer offers.Offer) []any {
	return []any{
		amountOrZero(offer.Terms.Principal),
		amountOrZero(offer.Terms.Repayment),
		amountOrZero(offer.Collateral.TokenID),
		offer.Collateral.Address,
		new(big.Int).SetUint64(uint64(offer.Terms.Duration)),
		new(big.Int).SetUint64(offer.AdminFeeBasisPoints),
		offer.Terms.Currency,
		offer.Lender.Address,
		amountOrZero(offer.Lender.Nonce),
		new(big.Int).SetUint64(offer.Terms.Expiry),
		[]byte(offer.Signature),
	}
}

func amountOrZero(a *types.Amount) *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return a.BigInt()
}

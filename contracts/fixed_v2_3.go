package contracts

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/offers"
)

// offerTermsV23 mirrors the v2.3 acceptOffer tuple. v2.3 reordered the
// fields relative to v2, so it gets its own struct rather than sharing.
type offerTermsV23 struct {
	LoanPrincipalAmount       *big.Int
	MaximumRepaymentAmount    *big.Int
	NftCollateralId           *big.Int
	LoanERC20Denomination     common.Address
	LoanDuration              uint32
	LoanAdminFeeInBasisPoints uint16
	NftCollateralContract     common.Address
	Referrer                  common.Address
}

type offerSignatureV23 struct {
	Signer    common.Address
	Nonce     *big.Int
	Expiry    *big.Int
	Signature []byte
}

// NewFixedV23 adapts the v2.3 fixed-term loan contract.
func NewFixedV23(backend Backend, deployment config.Contract, log *slog.Logger) Adapter {
	return &loanAdapter{
		name:       NameFixedV23,
		acceptName: "acceptOffer",
		pack:       packOfferV23,
		loanIDArg:  uint32LoanID,
		binding:    newBinding(backend, deployment),
		log:        log,
	}
}

func packOfferV23(offer offers.Offer) []any {
	return []any{
		offerTermsV23{
			LoanPrincipalAmount:       amountOrZero(offer.Terms.Principal),
			MaximumRepaymentAmount:    amountOrZero(offer.Terms.Repayment),
			NftCollateralId:           amountOrZero(offer.Collateral.TokenID),
			LoanERC20Denomination:     offer.Terms.Currency,
			LoanDuration:              offer.Terms.Duration,
			LoanAdminFeeInBasisPoints: uint16(offer.AdminFeeBasisPoints),
			NftCollateralContract:     offer.Collateral.Address,
			Referrer:                  defaultReferrer,
		},
		offerSignatureV23{
			Signer:    offer.Lender.Address,
			Nonce:     amountOrZero(offer.Lender.Nonce),
			Expiry:    new(big.Int).SetUint64(offer.Terms.Expiry),
			Signature: []byte(offer.Signature),
		},
		borrowerSettingsV2{
			RevenueSharePartner:      defaultRevenueSharePartner,
			ReferralFeeInBasisPoints: defaultReferralFeeBasisPoints,
		},
	}
}

package contracts

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/offers"
)

// Offer fields the v2-family protocol requires but the SDK does not yet
// expose. The zero address and 0 bps are the documented "no referrer"
// placeholders.
var (
	defaultReferrer            = common.Address{}
	defaultRevenueSharePartner = common.Address{}
)

const defaultReferralFeeBasisPoints uint16 = 0

// offerTermsV2 mirrors the v2 acceptOffer tuple; field order must match the
// ABI components exactly.
type offerTermsV2 struct {
	LoanERC20Denomination     common.Address
	LoanPrincipalAmount       *big.Int
	MaximumRepaymentAmount    *big.Int
	NftCollateralId           *big.Int
	NftCollateralContract     common.Address
	LoanDuration              uint32
	LoanAdminFeeInBasisPoints uint16
	Referrer                  common.Address
}

type offerSignatureV2 struct {
	Nonce     *big.Int
	Expiry    *big.Int
	Signer    common.Address
	Signature []byte
}

type borrowerSettingsV2 struct {
	RevenueSharePartner      common.Address
	ReferralFeeInBasisPoints uint16
}

// NewFixedV2 adapts the v2 fixed-term loan contract, the first version to
// take structured offer/signature/settings tuples.
func NewFixedV2(backend Backend, deployment config.Contract, log *slog.Logger) Adapter {
	return &loanAdapter{
		name:       NameFixedV2,
		acceptName: "acceptOffer",
		pack:       packOfferV2,
		loanIDArg:  uint32LoanID,
		binding:    newBinding(backend, deployment),
		log:        log,
	}
}

func packOfferV2(offer offers.Offer) []any {
	return []any{
		offerTermsV2{
			LoanERC20Denomination:     offer.Terms.Currency,
			LoanPrincipalAmount:       amountOrZero(offer.Terms.Principal),
			MaximumRepaymentAmount:    amountOrZero(offer.Terms.Repayment),
			NftCollateralId:           amountOrZero(offer.Collateral.TokenID),
			NftCollateralContract:     offer.Collateral.Address,
			LoanDuration:              offer.Terms.Duration,
			LoanAdminFeeInBasisPoints: uint16(offer.AdminFeeBasisPoints),
			Referrer:                  defaultReferrer,
		},
		offerSignatureV2{
			Nonce:     amountOrZero(offer.Lender.Nonce),
			Expiry:    new(big.Int).SetUint64(offer.Terms.Expiry),
			Signer:    offer.Lender.Address,
			Signature: []byte(offer.Signature),
		},
		borrowerSettingsV2{
			RevenueSharePartner:      defaultRevenueSharePartner,
			ReferralFeeInBasisPoints: defaultReferralFeeBasisPoints,
		},
	}
}

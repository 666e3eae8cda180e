// Package offers models loan proposals. An Offer is immutable once signed:
// the signature commits to every term, and the lender nonce is consumed
// on-chain exactly once when a borrower accepts it.
package offers

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/LendzLabs/nftfi-go/types"
)

// Collateral identifies the NFT pledged against the loan.
type Collateral struct {
	Address common.Address `json:"address"`
	// TokenID is the uint256 token identifier. For collection offers the
	// borrower chooses the id at acceptance time.
	TokenID *types.Amount `json:"id"`
}

// Terms are the economic parameters of the proposal. Principal and Repayment
// are denominated in the currency's smallest unit and carried at full
// precision; repayment amounts regularly exceed 2^53.
type Terms struct {
	Currency  common.Address `json:"currency"`
	Principal *types.Amount  `json:"principal"`
	Repayment *types.Amount  `json:"repayment"`
	// Duration is the loan term in seconds from acceptance.
	Duration uint32 `json:"duration"`
	// Expiry is the unix timestamp after which the offer can no longer be
	// accepted.
	Expiry uint64 `json:"expiry"`
}

// Lender binds the proposal to its author. Nonce scopes the signature; the
// contract marks it used on acceptance and rejects replays.
type Lender struct {
	Address common.Address `json:"address"`
	Nonce   *types.Amount  `json:"nonce"`
}

// Offer is a signed (or not-yet-signed) loan proposal targeting one contract
// version.
type Offer struct {
	Collateral Collateral `json:"nft"`
	Terms      Terms      `json:"terms"`
	Lender     Lender     `json:"lender"`
	// Signature is the lender's ECDSA signature over the offer terms.
	Signature hexutil.Bytes `json:"signature"`
	// AdminFeeBasisPoints is the protocol fee committed into the signature.
	AdminFeeBasisPoints uint64 `json:"adminFeeInBasisPoints"`
	// ContractName selects the contract version the offer is valid for,
	// e.g. "v2-3.loan.fixed".
	ContractName string `json:"contractName"`
}

const maxBasisPoints = 10_000

// Validate checks an offer is structurally acceptable before it is handed to
// a contract adapter. It returns a field-keyed validation error so callers
// can surface messages against the offending inputs.
func (o *Offer) Validate() error {
	verr := &types.ValidationError{}
	if o.Terms.Principal == nil || o.Terms.Principal.Sign() <= 0 {
		verr.Add("offer.terms.principal", "principal must be positive")
	} else if !fitsUint256(o.Terms.Principal.BigInt()) {
		verr.Add("offer.terms.principal", "principal exceeds uint256")
	}
	if o.Terms.Repayment == nil || o.Terms.Repayment.Sign() <= 0 {
		verr.Add("offer.terms.repayment", "repayment must be positive")
	} else if !fitsUint256(o.Terms.Repayment.BigInt()) {
		verr.Add("offer.terms.repayment", "repayment exceeds uint256")
	} else if o.Terms.Principal != nil && o.Terms.Repayment.Cmp(o.Terms.Principal) < 0 {
		verr.Add("offer.terms.repayment", "repayment must not be below principal")
	}
	if o.Terms.Duration == 0 {
		verr.Add("offer.terms.duration", "duration must be positive")
	}
	if o.AdminFeeBasisPoints > maxBasisPoints {
		verr.Add("offer.adminFeeInBasisPoints", fmt.Sprintf("fee must not exceed %d basis points", maxBasisPoints))
	}
	if (o.Lender.Address == common.Address{}) {
		verr.Add("offer.lender.address", "lender address required")
	}
	if o.Lender.Nonce == nil {
		verr.Add("offer.lender.nonce", "lender nonce required")
	}
	if len(o.Signature) == 0 {
		verr.Add("offer.signature", "signature required")
	}
	if o.ContractName == "" {
		verr.Add("nftfi.contract.name", "contract name required")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func fitsUint256(v *big.Int) bool {
	_, overflow := uint256.FromBig(v)
	return !overflow
}

// NewNonce draws a random uint256 nonce for a fresh offer.
func NewNonce() (*types.Amount, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("offers: draw nonce: %w", err)
	}
	return types.NewAmount(new(big.Int).SetBytes(buf[:])), nil
}

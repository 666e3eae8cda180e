package contracts

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/contracts/abis"
	"github.com/LendzLabs/nftfi-go/offers"
	"github.com/LendzLabs/nftfi-go/types"
)

// Contract version names. These are the only dispatch keys the router
// accepts; every name maps to exactly one adapter in the registry.
const (
	NameFixedV1       = "v1.loan.fixed"
	NameFixedV2       = "v2.loan.fixed"
	NameFixedV21      = "v2-1.loan.fixed"
	NameFixedV23      = "v2-3.loan.fixed"
	NameCollectionV2  = "v2.loan.fixed.collection"
	NameCollectionV23 = "v2-3.loan.fixed.collection"
)

// Adapter hides one contract version behind the four canonical loan
// operations. All four are fail-closed: transport faults, reverts and
// timeouts surface as the negative result, never as an error or panic, so
// callers treat "could not confirm success" exactly like "confirmed failure".
type Adapter interface {
	// Name returns the contract version name the adapter serves.
	Name() string
	// AcceptOffer begins a loan from a signed offer.
	AcceptOffer(ctx context.Context, offer offers.Offer) types.ActionResult
	// LiquidateOverdueLoan forecloses a defaulted loan.
	LiquidateOverdueLoan(ctx context.Context, loanID *big.Int) bool
	// PayBackLoan repays an active loan in full.
	PayBackLoan(ctx context.Context, loanID *big.Int) types.ActionResult
	// CancelLoanCommitmentBeforeLoanHasBegun invalidates a not-yet-accepted
	// offer by burning its nonce.
	CancelLoanCommitmentBeforeLoanHasBegun(ctx context.Context, nonce *big.Int) bool
	// NonceUsed reports whether the user's nonce was already consumed
	// on-chain. Read-only; unlike the four actions it surfaces errors.
	NonceUsed(ctx context.Context, user common.Address, nonce *big.Int) (bool, error)
}

// binding lazily resolves the contract handle on first use. Construction
// performs no I/O and cannot fail; ABI parsing and backend binding are
// deferred until a call actually needs the handle, then cached for the
// adapter's lifetime.
type binding struct {
	backend Backend
	address common.Address
	abiName string

	once   sync.Once
	handle Handle
	err    error
}

func newBinding(backend Backend, deployment config.Contract) *binding {
	return &binding{
		backend: backend,
		address: common.HexToAddress(deployment.Address),
		abiName: deployment.ABI,
	}
}

func (b *binding) bind() (Handle, error) {
	b.once.Do(func() {
		parsed, err := abis.Load(b.abiName)
		if err != nil {
			b.err = err
			return
		}
		b.handle = b.backend.Bind(b.address, parsed)
	})
	return b.handle, b.err
}

// loanAdapter is the shared adapter shape. Versions differ only in the
// accept entry point name, the offer tuple packing and the loan id width.
type loanAdapter struct {
	name       string
	acceptName string
	pack       func(offer offers.Offer) []any
	loanIDArg  func(loanID *big.Int) (any, error)

	binding *binding
	log     *slog.Logger
}

func (a *loanAdapter) Name() string { return a.name }

func (a *loanAdapter) AcceptOffer(ctx context.Context, offer offers.Offer) types.ActionResult {
	return a.transact(ctx, a.acceptName, a.pack(offer)...)
}

func (a *loanAdapter) LiquidateOverdueLoan(ctx context.Context, loanID *big.Int) bool {
	arg, err := a.loanIDArg(loanID)
	if err != nil {
		a.log.Warn("loan id rejected", "contract", a.name, "method", "liquidateOverdueLoan", "err", err)
		return false
	}
	return a.transact(ctx, "liquidateOverdueLoan", arg).Success
}

func (a *loanAdapter) PayBackLoan(ctx context.Context, loanID *big.Int) types.ActionResult {
	arg, err := a.loanIDArg(loanID)
	if err != nil {
		a.log.Warn("loan id rejected", "contract", a.name, "method", "payBackLoan", "err", err)
		return types.Failure()
	}
	return a.transact(ctx, "payBackLoan", arg)
}

func (a *loanAdapter) CancelLoanCommitmentBeforeLoanHasBegun(ctx context.Context, nonce *big.Int) bool {
	return a.transact(ctx, "cancelLoanCommitmentBeforeLoanHasBegun", bigOrZero(nonce)).Success
}

func (a *loanAdapter) NonceUsed(ctx context.Context, user common.Address, nonce *big.Int) (bool, error) {
	handle, err := a.binding.bind()
	if err != nil {
		return false, err
	}
	var used bool
	if err := handle.Call(ctx, &used, "getWhetherNonceHasBeenUsedForUser", user, bigOrZero(nonce)); err != nil {
		return false, err
	}
	return used, nil
}

// transact is the single choke point where call faults are downgraded to the
// negative result. Nothing past this function ever sees an error.
func (a *loanAdapter) transact(ctx context.Context, method string, args ...any) types.ActionResult {
	handle, err := a.binding.bind()
	if err != nil {
		a.log.Warn("contract binding failed", "contract", a.name, "method", method, "err", err)
		return types.Failure()
	}
	receipt, err := handle.Transact(ctx, method, args...)
	if err != nil {
		a.log.Warn("contract call failed", "contract", a.name, "method", method, "err", err)
		return types.Failure()
	}
	result := types.ResultFromReceipt(receipt)
	if !result.Success {
		a.log.Warn("contract call reverted", "contract", a.name, "method", method)
	}
	return result
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

var errLoanIDRange = errors.New("contracts: loan id out of range")

// uint32LoanID narrows a loan id to the v2-family ABI width. Ids outside
// uint32 must be rejected, not wrapped, or the call would target a different
// valid loan.
func uint32LoanID(loanID *big.Int) (any, error) {
	id := bigOrZero(loanID)
	if !id.IsUint64() || id.Uint64() > math.MaxUint32 {
		return nil, errLoanIDRange
	}
	return uint32(id.Uint64()), nil
}

func uint256LoanID(loanID *big.Int) (any, error) {
	id := bigOrZero(loanID)
	if _, overflow := uint256.FromBig(id); id.Sign() < 0 || overflow {
		return nil, errLoanIDRange
	}
	return id, nil
}

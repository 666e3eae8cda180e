// Package contracts is the contract-version adaptation layer. Each deployed
// loan contract version is wrapped by an adapter translating the canonical
// offer/loan shapes into that version's call signature and collapsing every
// underlying failure into the normalized negative result.
package contracts

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// Backend creates bound contract handles. Implementations own transport,
// signing and gas policy; the adapter layer never sees those concerns.
type Backend interface {
	Bind(address common.Address, contractABI abi.ABI) Handle
}

// Handle is a bound contract. Transact submits a state-changing call and
// waits for the mined receipt; Call performs a read-only lookup into result.
type Handle interface {
	Transact(ctx context.Context, method string, args ...any) (*coretypes.Receipt, error)
	Call(ctx context.Context, result any, method string, args ...any) error
}

package contracts

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// ErrBackendUnavailable is returned by handles from Unavailable.
var ErrBackendUnavailable = errors.New("contracts: no call backend configured")

// Unavailable returns a Backend whose every call fails. It backs read-only
// SDK configurations: the adapters' fail-closed policy turns those failures
// into ordinary negative results.
func Unavailable() Backend {
	return unavailableBackend{}
}

type unavailableBackend struct{}

func (unavailableBackend) Bind(common.Address, abi.ABI) Handle {
	return unavailableHandle{}
}

type unavailableHandle struct{}

func (unavailableHandle) Transact(context.Context, string, ...any) (*coretypes.Receipt, error) {
	return nil, ErrBackendUnavailable
}

func (unavailableHandle) Call(context.Context, any, string, ...any) error {
	return ErrBackendUnavailable
}

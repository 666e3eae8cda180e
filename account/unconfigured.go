package account

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Unconfigured returns the Account used when the caller supplied none. Every
// capability check fails with the matching sentinel, so actions that need a
// signer fail fast before any dispatch while read-only paths stay usable.
func Unconfigured() Account {
	return unconfigured{}
}

type unconfigured struct{}

func (unconfigured) Address() (common.Address, error) {
	return common.Address{}, ErrNoAddress
}

func (unconfigured) SignText(context.Context, []byte) ([]byte, error) {
	return nil, ErrNoSigner
}

func (unconfigured) TransactOpts(context.Context, *big.Int) (*bind.TransactOpts, error) {
	return nil, ErrNoSigner
}

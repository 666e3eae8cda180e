// Package account abstracts the signing identity used for loan actions. The
// rest of the SDK only depends on the Account interface; key custody stays
// with the caller.
package account

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrNoSigner is returned when an action requires a transaction signer
	// and none was configured.
	ErrNoSigner = errors.New("account: signer not configured")
	// ErrNoAddress is returned when an action requires the caller address
	// and none was configured.
	ErrNoAddress = errors.New("account: address not configured")
)

// Account supplies the caller identity and signing capability for loan
// actions. Address and TransactOpts fail fast when the underlying signer is
// absent; the router checks these preconditions before any dispatch.
type Account interface {
	// Address returns the account's address, or ErrNoAddress.
	Address() (common.Address, error)
	// SignText signs an EIP-191 personal message, or returns ErrNoSigner.
	SignText(ctx context.Context, message []byte) ([]byte, error)
	// TransactOpts builds signing options for a transaction on the given
	// chain, or returns ErrNoSigner.
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}

// PrivateKeyAccount is an in-process Account backed by a raw secp256k1 key.
// Suited to bots and tests; production integrations typically implement
// Account over an external wallet or KMS instead.
type PrivateKeyAccount struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewPrivateKeyAccount derives the account from a hex-encoded private key.
func NewPrivateKeyAccount(hexKey string) (*PrivateKeyAccount, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.Join(ErrNoSigner, err)
	}
	return &PrivateKeyAccount{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address implements Account.
func (a *PrivateKeyAccount) Address() (common.Address, error) {
	if a == nil || a.key == nil {
		return common.Address{}, ErrNoAddress
	}
	return a.address, nil
}

// SignText implements Account using the standard personal-message prefix.
func (a *PrivateKeyAccount) SignText(_ context.Context, message []byte) ([]byte, error) {
	if a == nil || a.key == nil {
		return nil, ErrNoSigner
	}
	sig, err := crypto.Sign(accounts.TextHash(message), a.key)
	if err != nil {
		return nil, err
	}
	// Shift V into the 27/28 range expected by on-chain ecrecover.
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// TransactOpts implements Account.
func (a *PrivateKeyAccount) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if a == nil || a.key == nil {
		return nil, ErrNoSigner
	}
	opts, err := bind.NewKeyedTransactorWithChainID(a.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

package contracts

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/LendzLabs/nftfi-go/account"
)

// EthBackend is the Backend the SDK ships with: a JSON-RPC node plus the
// configured account. Gas and timeout policy are the node client's; the
// adapter layer above imposes neither.
type EthBackend struct {
	client  *ethclient.Client
	account account.Account
	chainID *big.Int
}

// NewEthBackend dials the node and pins the chain id used for signing.
func NewEthBackend(ctx context.Context, rawURL string, acct account.Account) (*EthBackend, error) {
	if acct == nil {
		return nil, account.ErrNoSigner
	}
	client, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("contracts: dial %s: %w", rawURL, err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("contracts: chain id: %w", err)
	}
	return &EthBackend{client: client, account: acct, chainID: chainID}, nil
}

// ChainID returns the connected chain's id.
func (b *EthBackend) ChainID() *big.Int {
	return new(big.Int).Set(b.chainID)
}

// Close releases the underlying RPC connection.
func (b *EthBackend) Close() {
	if b != nil && b.client != nil {
		b.client.Close()
	}
}

// Bind implements Backend.
func (b *EthBackend) Bind(address common.Address, contractABI abi.ABI) Handle {
	return &boundHandle{
		contract: bind.NewBoundContract(address, contractABI, b.client, b.client, b.client),
		backend:  b,
	}
}

type boundHandle struct {
	contract *bind.BoundContract
	backend  *EthBackend
}

// Transact signs, submits and waits for the mined receipt.
func (h *boundHandle) Transact(ctx context.Context, method string, args ...any) (*coretypes.Receipt, error) {
	opts, err := h.backend.account.TransactOpts(ctx, h.backend.chainID)
	if err != nil {
		return nil, err
	}
	tx, err := h.contract.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("contracts: %s: %w", method, err)
	}
	receipt, err := bind.WaitMined(ctx, h.backend.client, tx)
	if err != nil {
		return nil, fmt.Errorf("contracts: wait %s: %w", method, err)
	}
	return receipt, nil
}

// Call performs a read-only call, decoding the single return value into
// result.
func (h *boundHandle) Call(ctx context.Context, result any, method string, args ...any) error {
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("contracts: call result must be a non-nil pointer")
	}
	var out []any
	if err := h.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return fmt.Errorf("contracts: call %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil
	}
	converted := abi.ConvertType(out[0], result)
	rv.Elem().Set(reflect.ValueOf(converted).Elem())
	return nil
}

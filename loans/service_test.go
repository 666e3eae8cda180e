package loans

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/LendzLabs/nftfi-go/account"
	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/contracts"
	"github.com/LendzLabs/nftfi-go/observability/metrics"
	"github.com/LendzLabs/nftfi-go/offers"
	"github.com/LendzLabs/nftfi-go/types"
)

type recordedCall struct {
	method string
	args   []any
}

type stubHandle struct {
	err       error
	status    uint64
	transacts []recordedCall
}

func (h *stubHandle) Transact(_ context.Context, method string, args ...any) (*coretypes.Receipt, error) {
	h.transacts = append(h.transacts, recordedCall{method: method, args: args})
	if h.err != nil {
		return nil, h.err
	}
	return &coretypes.Receipt{Status: h.status}, nil
}

func (h *stubHandle) Call(context.Context, any, string, ...any) error {
	return errors.New("not implemented")
}

// stubBackend records which deployment address each bind targeted so tests
// can assert dispatch went to exactly one version's contract.
type stubBackend struct {
	handle *stubHandle
	bound  []common.Address
}

func (b *stubBackend) Bind(address common.Address, _ abi.ABI) contracts.Handle {
	b.bound = append(b.bound, address)
	return b.handle
}

type testAccount struct {
	addr common.Address
}

func (a testAccount) Address() (common.Address, error) { return a.addr, nil }

func (a testAccount) SignText(context.Context, []byte) ([]byte, error) {
	return []byte{0x01}, nil
}

func (a testAccount) TransactOpts(context.Context, *big.Int) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: a.addr}, nil
}

// deploymentAddresses gives every version a distinct address so a bind
// uniquely identifies the adapter that performed it.
var deploymentAddresses = map[string]string{
	contracts.NameFixedV1:       "0x0000000000000000000000000000000000000101",
	contracts.NameFixedV2:       "0x0000000000000000000000000000000000000102",
	contracts.NameFixedV21:      "0x0000000000000000000000000000000000000103",
	contracts.NameFixedV23:      "0x0000000000000000000000000000000000000104",
	contracts.NameCollectionV2:  "0x0000000000000000000000000000000000000105",
	contracts.NameCollectionV23: "0x0000000000000000000000000000000000000106",
}

var deploymentABIs = map[string]string{
	contracts.NameFixedV1:       "loan-fixed-v1",
	contracts.NameFixedV2:       "loan-fixed-v2",
	contracts.NameFixedV21:      "loan-fixed-v2",
	contracts.NameFixedV23:      "loan-fixed-v2-3",
	contracts.NameCollectionV2:  "loan-collection-v2",
	contracts.NameCollectionV23: "loan-collection-v2-3",
}

func testNetwork() *config.Network {
	deployments := make(map[string]config.Contract, len(deploymentAddresses))
	for name, address := range deploymentAddresses {
		deployments[name] = config.Contract{Address: address, ABI: deploymentABIs[name]}
	}
	return &config.Network{
		ChainID:   1,
		Name:      "testnet",
		API:       config.API{BaseURL: "https://api.example.com", PageLimit: 20},
		Contracts: deployments,
		Currencies: map[string]config.Currency{
			"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2": {Symbol: "wETH", Unit: "ether"},
		},
	}
}

func newTestService(backend contracts.Backend, acct account.Account) *Service {
	network := testNetwork()
	return NewService(ServiceConfig{
		Registry: contracts.NewRegistry(network, backend, slog.Default()),
		Account:  acct,
		Network:  network,
		Logger:   slog.Default(),
		Metrics:  metrics.New(nil),
	})
}

func signedOffer(name string) offers.Offer {
	principal, _ := types.ParseAmount("12345678901234567890")
	repayment, _ := types.ParseAmount("13000000000000000000")
	return offers.Offer{
		Collateral: offers.Collateral{
			Address: common.HexToAddress("0x00000000000000000000000000000000000000b1"),
			TokenID: types.NewAmount(big.NewInt(42)),
		},
		Terms: offers.Terms{
			Currency:  common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
			Principal: principal,
			Repayment: repayment,
			Duration:  604800,
			Expiry:    1_700_000_000,
		},
		Lender: offers.Lender{
			Address: common.HexToAddress("0x00000000000000000000000000000000000000c2"),
			Nonce:   types.NewAmount(big.NewInt(7)),
		},
		Signature:           []byte{0x01, 0x02},
		AdminFeeBasisPoints: 500,
		ContractName:        name,
	}
}

func TestBeginDispatchesToMatchingAdapterOnly(t *testing.T) {
	t.Parallel()

	for name, address := range deploymentAddresses {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			backend := &stubBackend{handle: &stubHandle{status: 1}}
			service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

			result, err := service.Begin(context.Background(), BeginParams{Offer: signedOffer(name)})
			require.NoError(t, err)
			require.True(t, result.Success)
			require.Equal(t, []common.Address{common.HexToAddress(address)}, backend.bound,
				"begin must bind exactly the matching version's deployment")
			require.Len(t, backend.handle.transacts, 1)
		})
	}
}

func TestBeginUnsupportedVersionIsValidationError(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	_, err := service.Begin(context.Background(), BeginParams{Offer: signedOffer("v9.loan.fixed")})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"v9.loan.fixed not supported"}, verr.Errors[FieldContractName])
	require.Empty(t, backend.bound, "no contract call may happen for unsupported versions")
	require.Empty(t, backend.handle.transacts)
}

func TestBeginRequiresConfiguredAccount(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, account.Unconfigured())

	_, err := service.Begin(context.Background(), BeginParams{Offer: signedOffer(contracts.NameFixedV2)})
	require.ErrorIs(t, err, account.ErrNoAddress)
	require.Empty(t, backend.handle.transacts)
}

func TestBeginRejectsMalformedOffer(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	offer := signedOffer(contracts.NameFixedV2)
	offer.Terms.Principal = nil
	_, err := service.Begin(context.Background(), BeginParams{Offer: offer})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Errors, "offer.terms.principal")
	require.Empty(t, backend.handle.transacts)
}

func TestLiquidateSucceedsOnStatusOne(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	success, err := service.Liquidate(context.Background(), LiquidateParams{
		LoanID:       3,
		ContractName: contracts.NameCollectionV23,
	})
	require.NoError(t, err)
	require.True(t, success)
	require.Equal(t, "liquidateOverdueLoan", backend.handle.transacts[0].method)
}

func TestLiquidateFailsClosedOnBackendTimeout(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{err: context.DeadlineExceeded}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	success, err := service.Liquidate(context.Background(), LiquidateParams{
		LoanID:       3,
		ContractName: contracts.NameCollectionV23,
	})
	require.NoError(t, err, "call faults must not surface as errors")
	require.False(t, success)
}

func TestLiquidateUnknownVersionIsSilentFailure(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	success, err := service.Liquidate(context.Background(), LiquidateParams{
		LoanID:       3,
		ContractName: "v9.loan.fixed",
	})
	require.NoError(t, err)
	require.False(t, success)
	require.Empty(t, backend.bound)
}

func TestRepayUnknownVersionIsSilentFailure(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	result, err := service.Repay(context.Background(), RepayParams{
		LoanID:       3,
		ContractName: "v9.loan.fixed",
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Nil(t, result.Receipt)
	require.Empty(t, backend.bound)
}

func TestRepayReturnsReceiptOnSuccess(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	result, err := service.Repay(context.Background(), RepayParams{
		LoanID:       3,
		ContractName: contracts.NameFixedV21,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Receipt)
	require.Equal(t, "payBackLoan", backend.handle.transacts[0].method)
}

func TestRevokeOfferBurnsNonce(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	success, err := service.RevokeOffer(context.Background(), RevokeParams{
		Nonce:        types.NewAmount(big.NewInt(7)),
		ContractName: contracts.NameFixedV23,
	})
	require.NoError(t, err)
	require.True(t, success)
	require.Equal(t, "cancelLoanCommitmentBeforeLoanHasBegun", backend.handle.transacts[0].method)

	success, err = service.RevokeOffer(context.Background(), RevokeParams{
		Nonce:        types.NewAmount(big.NewInt(7)),
		ContractName: "v9.loan.fixed",
	})
	require.NoError(t, err)
	require.False(t, success)
}

func TestRevokeOfferRequiresNonce(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	_, err := service.RevokeOffer(context.Background(), RevokeParams{
		ContractName: contracts.NameFixedV23,
	})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Errors, "offer.lender.nonce")
	require.Empty(t, backend.handle.transacts, "a missing nonce must not burn nonce 0")
}

func TestNonceUsedSurfacesUnsupportedVersion(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{handle: &stubHandle{status: 1}}
	service := newTestService(backend, testAccount{addr: common.HexToAddress("0xd1")})

	_, err := service.NonceUsed(context.Background(), "v9.loan.fixed", "0xc2", types.NewAmount(big.NewInt(7)))
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
}

package loans

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/LendzLabs/nftfi-go/account"
	"github.com/LendzLabs/nftfi-go/api"
	"github.com/LendzLabs/nftfi-go/config"
	"github.com/LendzLabs/nftfi-go/contracts"
	"github.com/LendzLabs/nftfi-go/observability/metrics"
	"github.com/LendzLabs/nftfi-go/offers"
	"github.com/LendzLabs/nftfi-go/types"
)

// ServiceConfig wires the router's collaborators.
type ServiceConfig struct {
	Registry *contracts.Registry
	Account  account.Account
	API      *api.Client
	Network  *config.Network
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Service routes loan actions to contract adapters and loan queries to the
// REST backend. Stateless per call: no retries, no ordering between calls.
type Service struct {
	registry *contracts.Registry
	account  account.Account
	api      *api.Client
	network  *config.Network
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewService builds the router.
func NewService(cfg ServiceConfig) *Service {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		registry: cfg.Registry,
		account:  cfg.Account,
		api:      cfg.API,
		network:  cfg.Network,
		log:      log,
		metrics:  cfg.Metrics,
	}
}

// BeginParams carries a signed offer to accept.
type BeginParams struct {
	Offer offers.Offer
}

// Begin accepts a signed offer, starting the loan on the offer's target
// contract version. An unsupported version name is a validation error keyed
// by "nftfi.contract.name"; no contract call is made in that case.
func (s *Service) Begin(ctx context.Context, params BeginParams) (*types.ActionResult, error) {
	if _, err := s.account.Address(); err != nil {
		return nil, err
	}
	name := params.Offer.ContractName
	adapter, ok := s.registry.Adapter(name)
	if !ok {
		return nil, types.NewValidationError(FieldContractName, fmt.Sprintf("%s not supported", name))
	}
	if err := params.Offer.Validate(); err != nil {
		return nil, err
	}
	result := adapter.AcceptOffer(ctx, params.Offer)
	s.metrics.ObserveAction("begin", name, result.Success)
	s.log.Info("begin loan", "contract", name, "success", result.Success)
	return &result, nil
}

// LiquidateParams identifies an overdue loan on a contract version.
type LiquidateParams struct {
	LoanID       uint64
	ContractName string
}

// Liquidate forecloses an overdue loan. An unrecognized contract version
// name falls through to the default negative result rather than an error;
// callers must not rely on an error surfacing an unsupported name here.
func (s *Service) Liquidate(ctx context.Context, params LiquidateParams) (bool, error) {
	if _, err := s.account.Address(); err != nil {
		return false, err
	}
	adapter, ok := s.registry.Adapter(params.ContractName)
	if !ok {
		s.log.Debug("liquidate on unsupported contract", "contract", params.ContractName)
		return false, nil
	}
	success := adapter.LiquidateOverdueLoan(ctx, new(big.Int).SetUint64(params.LoanID))
	s.metrics.ObserveAction("liquidate", params.ContractName, success)
	s.log.Info("liquidate loan", "contract", params.ContractName, "loan", params.LoanID, "success", success)
	return success, nil
}

// RepayParams identifies an active loan on a contract version.
type RepayParams struct {
	LoanID       uint64
	ContractName string
}

// Repay pays back an active loan in full. Unrecognized version names fall
// through to the negative result, matching Liquidate.
func (s *Service) Repay(ctx context.Context, params RepayParams) (*types.ActionResult, error) {
	if _, err := s.account.Address(); err != nil {
		return nil, err
	}
	adapter, ok := s.registry.Adapter(params.ContractName)
	if !ok {
		s.log.Debug("repay on unsupported contract", "contract", params.ContractName)
		result := types.Failure()
		return &result, nil
	}
	result := adapter.PayBackLoan(ctx, new(big.Int).SetUint64(params.LoanID))
	s.metrics.ObserveAction("repay", params.ContractName, result.Success)
	s.log.Info("repay loan", "contract", params.ContractName, "loan", params.LoanID, "success", result.Success)
	return &result, nil
}

// RevokeParams identifies a not-yet-accepted offer by its lender nonce.
type RevokeParams struct {
	Nonce        *types.Amount
	ContractName string
}

// RevokeOffer burns an offer nonce before any borrower accepts it.
// Unrecognized version names fall through to the negative result. A nonce is
// required: defaulting a missing one would burn nonce 0 on-chain.
func (s *Service) RevokeOffer(ctx context.Context, params RevokeParams) (bool, error) {
	if _, err := s.account.Address(); err != nil {
		return false, err
	}
	if params.Nonce == nil {
		return false, types.NewValidationError("offer.lender.nonce", "lender nonce required")
	}
	adapter, ok := s.registry.Adapter(params.ContractName)
	if !ok {
		s.log.Debug("revoke on unsupported contract", "contract", params.ContractName)
		return false, nil
	}
	success := adapter.CancelLoanCommitmentBeforeLoanHasBegun(ctx, params.Nonce.BigInt())
	s.metrics.ObserveAction("revoke", params.ContractName, success)
	s.log.Info("revoke offer", "contract", params.ContractName, "success", success)
	return success, nil
}

// NonceUsed reports whether a lender nonce was already consumed on the given
// contract version. Unlike the action verbs this read path surfaces errors,
// including unsupported version names.
func (s *Service) NonceUsed(ctx context.Context, contractName string, lender string, nonce *types.Amount) (bool, error) {
	adapter, ok := s.registry.Adapter(contractName)
	if !ok {
		return false, types.NewValidationError(FieldContractName, fmt.Sprintf("%s not supported", contractName))
	}
	var n *big.Int
	if nonce != nil {
		n = nonce.BigInt()
	}
	return adapter.NonceUsed(ctx, common.HexToAddress(lender), n)
}

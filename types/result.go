package types

import (
	coretypes "github.com/ethereum/go-ethereum/core/types"
)

// ActionResult is the normalized outcome of a state-changing loan action.
// Success is true only when the underlying call completed and the receipt
// reported status 1; every other outcome (revert, timeout, transport fault)
// collapses to Success=false with a nil receipt. Callers never need to
// distinguish "could not confirm success" from "confirmed failure".
type ActionResult struct {
	Receipt *coretypes.Receipt
	Success bool
}

// Failure is the canonical negative result.
func Failure() ActionResult {
	return ActionResult{}
}

// ResultFromReceipt normalizes a mined receipt into an ActionResult.
func ResultFromReceipt(receipt *coretypes.Receipt) ActionResult {
	if receipt == nil || receipt.Status != coretypes.ReceiptStatusSuccessful {
		return Failure()
	}
	return ActionResult{Receipt: receipt, Success: true}
}

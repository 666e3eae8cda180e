package contracts

import (
	"log/slog"

	"github.com/LendzLabs/nftfi-go/config"
)

// NewFixedV21 adapts the v2.1 fixed-term loan contract. The call surface is
// identical to v2; only the deployment differs.
func NewFixedV21(backend Backend, deployment config.Contract, log *slog.Logger) Adapter {
	return &loanAdapter{
		name:       NameFixedV21,
		acceptName: "acceptOffer",
		pack:       packOfferV2,
		loanIDArg:  uint32LoanID,
		binding:    newBinding(backend, deployment),
		log:        log,
	}
}

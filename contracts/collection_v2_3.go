package contracts

import (
	"log/slog"

	"github.com/LendzLabs/nftfi-go/config"
)

// NewCollectionV23 adapts the v2.3 collection-offer contract, combining the
// v2.3 tuple layout with the acceptCollectionOffer entry point.
func NewCollectionV23(backend Backend, deployment config.Contract, log *slog.Logger) Adapter {
	return &loanAdapter{
		name:       NameCollectionV23,
		acceptName: "acceptCollectionOffer",
		pack:       packOfferV23,
		loanIDArg:  uint32LoanID,
		binding:    newBinding(backend, deployment),
		log:        log,
	}
}

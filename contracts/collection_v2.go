package contracts

import (
	"log/slog"

	"github.com/LendzLabs/nftfi-go/config"
)

// NewCollectionV2 adapts the v2 collection-offer contract. Collection offers
// apply to any token in a collection; on-chain the entry point is
// acceptCollectionOffer, but the adapter exposes it as AcceptOffer like
// every other version.
func NewCollectionV2(backend Backend, deployment config.Contract, log *slog.Logger) Adapter {
	return &loanAdapter{
		name:       NameCollectionV2,
		acceptName: "acceptCollectionOffer",
		pack:       packOfferV2,
		loanIDArg:  uint32LoanID,
		binding:    newBinding(backend, deployment),
		log:        log,
	}
}

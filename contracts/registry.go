package contracts

import (
	"log/slog"
	"sort"

	"github.com/LendzLabs/nftfi-go/config"
)

// Registry is the closed version-name to adapter table, built once from the
// network parameter table. Names without a deployment on the network are
// simply absent; lookups for them fail rather than falling through to a
// different version.
type Registry struct {
	adapters map[string]Adapter
}

type adapterBuilder struct {
	name  string
	build func(Backend, config.Contract, *slog.Logger) Adapter
}

// builders is the exhaustive set of supported contract versions. Adding a
// version means adding exactly one entry here plus its adapter constructor.
var builders = []adapterBuilder{
	{NameFixedV1, NewFixedV1},
	{NameFixedV2, NewFixedV2},
	{NameFixedV21, NewFixedV21},
	{NameFixedV23, NewFixedV23},
	{NameCollectionV2, NewCollectionV2},
	{NameCollectionV23, NewCollectionV23},
}

// NewRegistry wires an adapter for every contract version deployed on the
// network. Construction performs no I/O: adapters bind their handles lazily
// on first call.
func NewRegistry(network *config.Network, backend Backend, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	adapters := make(map[string]Adapter, len(builders))
	for _, b := range builders {
		deployment, ok := network.Contract(b.name)
		if !ok {
			log.Debug("contract version not deployed on network", "contract", b.name, "network", network.Name)
			continue
		}
		adapters[b.name] = b.build(backend, deployment, log)
	}
	return &Registry{adapters: adapters}
}

// Adapter returns the adapter registered for a contract version name.
func (r *Registry) Adapter(name string) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.adapters[name]
	return a, ok
}

// Names lists the registered contract version names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

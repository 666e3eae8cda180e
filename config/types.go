package config

import (
	"strings"
)

// Contract identifies one deployed contract version: where it lives and which
// ABI document describes it.
type Contract struct {
	Address string `toml:"address"`
	ABI     string `toml:"abi"`
}

// Currency describes an ERC20 denomination the protocol accepts.
type Currency struct {
	Symbol string `toml:"symbol"`
	// Unit is the human-readable denomination used when presenting amounts,
	// e.g. "ether" for 18-decimal tokens or "mwei" for 6-decimal tokens.
	Unit string `toml:"unit"`
}

// API holds the REST backend parameters for a network.
type API struct {
	BaseURL string `toml:"base_url"`
	// PageLimit is the default page size applied to list queries when the
	// caller does not specify one.
	PageLimit int `toml:"page_limit"`
}

// Network is the parameter table for a single chain: contract addresses and
// ABIs keyed by contract version name, plus the currency registry. It is
// built once at startup and treated as immutable afterwards.
type Network struct {
	ChainID    uint64              `toml:"chain_id"`
	Name       string              `toml:"name"`
	API        API                 `toml:"api"`
	Contracts  map[string]Contract `toml:"contracts"`
	Currencies map[string]Currency `toml:"currencies"`
}

// Config is the full multi-network parameter table.
type Config struct {
	Networks map[string]Network `toml:"networks"`
}

// Contract looks up the deployment record for a contract version name.
func (n *Network) Contract(name string) (Contract, bool) {
	if n == nil {
		return Contract{}, false
	}
	c, ok := n.Contracts[name]
	return c, ok
}

// Currency resolves a currency by its ERC20 contract address. Address
// comparison is case-insensitive since checksummed and lowercase forms are
// both in circulation.
func (n *Network) Currency(address string) (Currency, bool) {
	if n == nil {
		return Currency{}, false
	}
	needle := strings.ToLower(strings.TrimSpace(address))
	for addr, currency := range n.Currencies {
		if strings.ToLower(addr) == needle {
			return currency, true
		}
	}
	return Currency{}, false
}

// Network returns the table for a named network.
func (c *Config) Network(name string) (*Network, bool) {
	if c == nil {
		return nil, false
	}
	n, ok := c.Networks[name]
	if !ok {
		return nil, false
	}
	return &n, true
}

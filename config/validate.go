package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var errNoNetworks = errors.New("config: no networks configured")

// Validate checks structural soundness: resolvable API endpoints, well-formed
// contract and currency addresses, and non-empty ABI references.
func (c *Config) Validate() error {
	if c == nil || len(c.Networks) == 0 {
		return errNoNetworks
	}
	for name, network := range c.Networks {
		if err := network.validate(); err != nil {
			return fmt.Errorf("config: network %s: %w", name, err)
		}
	}
	return nil
}

func (n *Network) validate() error {
	if n.ChainID == 0 {
		return errors.New("chain id required")
	}
	if strings.TrimSpace(n.API.BaseURL) == "" {
		return errors.New("api base url required")
	}
	if _, err := url.Parse(n.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if n.API.PageLimit < 0 {
		return errors.New("page limit must not be negative")
	}
	for version, contract := range n.Contracts {
		if !common.IsHexAddress(contract.Address) {
			return fmt.Errorf("contract %s: invalid address %q", version, contract.Address)
		}
		if strings.TrimSpace(contract.ABI) == "" {
			return fmt.Errorf("contract %s: abi reference required", version)
		}
	}
	for address, currency := range n.Currencies {
		if !common.IsHexAddress(address) {
			return fmt.Errorf("currency %s: invalid address", address)
		}
		if strings.TrimSpace(currency.Unit) == "" {
			return fmt.Errorf("currency %s: unit required", address)
		}
	}
	return nil
}

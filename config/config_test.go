package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var versionNames = []string{
	"v1.loan.fixed",
	"v2.loan.fixed",
	"v2-1.loan.fixed",
	"v2-3.loan.fixed",
	"v2.loan.fixed.collection",
	"v2-3.loan.fixed.collection",
}

func TestDefaultTablesValidate(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	mainnet, ok := cfg.Network("mainnet")
	require.True(t, ok)
	require.EqualValues(t, 1, mainnet.ChainID)
	for _, name := range versionNames {
		contract, ok := mainnet.Contract(name)
		require.True(t, ok, "missing deployment for %s", name)
		require.NotEmpty(t, contract.Address)
		require.NotEmpty(t, contract.ABI)
	}
}

func TestUnknownNetworkLookupFails(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	_, ok := cfg.Network("hardhat")
	require.False(t, ok)
}

func TestCurrencyLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	mainnet, _ := cfg.Network("mainnet")

	currency, ok := mainnet.Currency("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	require.True(t, ok)
	require.Equal(t, "ether", currency.Unit)
	require.Equal(t, "wETH", currency.Symbol)

	usdc, ok := mainnet.Currency("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	require.True(t, ok)
	require.Equal(t, "mwei", usdc.Unit)

	_, ok = mainnet.Currency("0x0000000000000000000000000000000000000001")
	require.False(t, ok)
}

func TestValidateRejectsBadTables(t *testing.T) {
	t.Parallel()

	var empty Config
	require.Error(t, empty.Validate())

	bad := Config{Networks: map[string]Network{
		"mainnet": {
			ChainID: 1,
			API:     API{BaseURL: "https://api.example.com"},
			Contracts: map[string]Contract{
				"v1.loan.fixed": {Address: "not-an-address", ABI: "loan-fixed-v1"},
			},
		},
	}}
	require.Error(t, bad.Validate())

	noUnit := Config{Networks: map[string]Network{
		"mainnet": {
			ChainID: 1,
			API:     API{BaseURL: "https://api.example.com"},
			Currencies: map[string]Currency{
				"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2": {Symbol: "wETH"},
			},
		},
	}}
	require.Error(t, noUnit.Validate())
}

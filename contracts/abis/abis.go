// Package abis embeds the minimal ABI fragments the SDK calls on each loan
// contract version. Only the entry points the adapters use are included.
package abis

import (
	"embed"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed *.json
var files embed.FS

// Load parses the embedded ABI document registered under name, e.g.
// "loan-fixed-v2".
func Load(name string) (abi.ABI, error) {
	data, err := files.ReadFile(name + ".json")
	if err != nil {
		return abi.ABI{}, fmt.Errorf("abis: unknown abi %q", name)
	}
	parsed, err := abi.JSON(strings.NewReader(string(data)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("abis: parse %s: %w", name, err)
	}
	return parsed, nil
}

package config

import (
	"fmt"
	"strings"
)

// Network names accepted by the --network flag.
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
	NetworkLocal   = "local"
)

// NetworkPreset resolves a named network to its service endpoints.
type NetworkPreset struct {
	Name       string
	NodeURL    string
	PricingURL string
	ChainID    uint64
}

var presets = map[string]NetworkPreset{
	NetworkMainnet: {
		Name:       NetworkMainnet,
		NodeURL:    "https://api.qrdx.org",
		PricingURL: "https://trade.qrdx.org/api/price",
		ChainID:    1,
	},
	NetworkTestnet: {
		Name:       NetworkTestnet,
		NodeURL:    "https://testnet-api.qrdx.org",
		PricingURL: "https://testnet-trade.qrdx.org/api/price",
		ChainID:    2,
	},
	NetworkLocal: {
		Name:       NetworkLocal,
		NodeURL:    "http://localhost:3007",
		PricingURL: "https://trade.qrdx.org/api/price",
		ChainID:    1337,
	},
}

// ResolveNetwork returns the preset for a network name, with explicit node
// and pricing URLs taking precedence over the preset values.
func ResolveNetwork(name, nodeURL, pricingURL string) (NetworkPreset, error) {
	if name == "" {
		name = NetworkMainnet
	}
	preset, ok := presets[strings.ToLower(name)]
	if !ok {
		return NetworkPreset{}, fmt.Errorf("unknown network: %s", name)
	}
	if nodeURL != "" {
		preset.NodeURL = nodeURL
	}
	if pricingURL != "" {
		preset.PricingURL = pricingURL
	}
	return preset, nil
}

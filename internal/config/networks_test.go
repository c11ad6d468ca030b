package config

import "testing"

func TestResolveNetworkDefaultsToMainnet(t *testing.T) {
	preset, err := ResolveNetwork("", "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if preset.Name != NetworkMainnet {
		t.Fatalf("name = %s, want %s", preset.Name, NetworkMainnet)
	}
	if preset.NodeURL != "https://api.qrdx.org" {
		t.Fatalf("node url = %s", preset.NodeURL)
	}
}

func TestResolveNetworkCaseInsensitive(t *testing.T) {
	preset, err := ResolveNetwork("TestNet", "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if preset.ChainID != 2 {
		t.Fatalf("chain id = %d, want 2", preset.ChainID)
	}
}

func TestResolveNetworkOverrides(t *testing.T) {
	preset, err := ResolveNetwork(NetworkLocal, "http://127.0.0.1:9000", "http://127.0.0.1:9001")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if preset.NodeURL != "http://127.0.0.1:9000" {
		t.Fatalf("node url override lost: %s", preset.NodeURL)
	}
	if preset.PricingURL != "http://127.0.0.1:9001" {
		t.Fatalf("pricing url override lost: %s", preset.PricingURL)
	}
	if preset.ChainID != 1337 {
		t.Fatalf("chain id = %d, want 1337", preset.ChainID)
	}
}

func TestResolveNetworkUnknown(t *testing.T) {
	if _, err := ResolveNetwork("devnet2", "", ""); err == nil {
		t.Fatalf("expected error for unknown network")
	}
}

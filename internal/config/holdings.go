package config

import "github.com/spf13/pflag"

// Holdings holds configuration for the holdings command.
type Holdings struct {
	Node
	Address   string
	TokenType string
	Symbols   []string
	TxLimit   int
	Page      int
	PGDSN     string
	Out       string
}

// LoadHoldings merges config file, environment variables, and flags.
func LoadHoldings(cfgFile string, flags *pflag.FlagSet) (Holdings, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return Holdings{}, err
	}

	v.SetDefault("tx-limit", 50)
	v.SetDefault("page", 1)

	return Holdings{
		Node:      nodeFromViper(v),
		Address:   v.GetString("address"),
		TokenType: v.GetString("token-type"),
		Symbols:   getStringSlice(v, "symbol"),
		TxLimit:   v.GetInt("tx-limit"),
		Page:      v.GetInt("page"),
		PGDSN:     v.GetString("pg-dsn"),
		Out:       v.GetString("out"),
	}, nil
}

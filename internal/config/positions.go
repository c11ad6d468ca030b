package config

import "github.com/spf13/pflag"

// Positions holds configuration for the positions command.
type Positions struct {
	Node
	Address  string
	Token    string
	Symbol   string
	Decimals uint8
	TxLimit  int
	Page     int
	Out      string
}

// LoadPositions merges config file, environment variables, and flags.
func LoadPositions(cfgFile string, flags *pflag.FlagSet) (Positions, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return Positions{}, err
	}

	v.SetDefault("decimals", 18)
	v.SetDefault("tx-limit", 50)
	v.SetDefault("page", 1)

	return Positions{
		Node:     nodeFromViper(v),
		Address:  v.GetString("address"),
		Token:    v.GetString("token"),
		Symbol:   v.GetString("symbol"),
		Decimals: uint8(v.GetUint("decimals")),
		TxLimit:  v.GetInt("tx-limit"),
		Page:     v.GetInt("page"),
		Out:      v.GetString("out"),
	}, nil
}

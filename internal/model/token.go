package model

// Token asset types supported by the network.
const (
	TokenTypeQRC20   = "QRC-20"
	TokenTypeQRC721  = "QRC-721"
	TokenTypeQRC1155 = "QRC-1155"
)

// TokenInfo is token metadata from the node. Decimals is authoritative and
// must always be carried explicitly; it is never assumed.
type TokenInfo struct {
	Address     string `json:"address"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply,omitempty"`
	Type        string `json:"type"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
}

// AddressToken is one token balance entry for an address.
type AddressToken struct {
	Token            TokenInfo `json:"token"`
	Balance          string    `json:"balance"`
	BalanceFormatted float64   `json:"balance_formatted"`
}

// AddressTokens is the get_address_tokens response.
type AddressTokens struct {
	Address    string         `json:"address"`
	Tokens     []AddressToken `json:"tokens"`
	TotalCount int            `json:"total_count"`
}

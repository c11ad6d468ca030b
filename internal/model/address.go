package model

// AddressInfo is the get_address_info response.
type AddressInfo struct {
	Address             string        `json:"address"`
	Balance             string        `json:"balance"`
	Nonce               uint64        `json:"nonce"`
	Transactions        []Transaction `json:"transactions"`
	TotalTransactions   int           `json:"total_transactions"`
	PendingTransactions []Transaction `json:"pending_transactions,omitempty"`
}

// Normalize normalizes every embedded transaction once at the boundary.
func (a *AddressInfo) Normalize() {
	if a.Balance == "" {
		a.Balance = "0"
	}
	for i := range a.Transactions {
		a.Transactions[i].Normalize()
	}
	for i := range a.PendingTransactions {
		a.PendingTransactions[i].Normalize()
	}
}

// TopAddressEntry is one entry of the get_top_addresses response.
type TopAddressEntry struct {
	Address          string `json:"address"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// TopAddresses is the get_top_addresses response.
type TopAddresses struct {
	Addresses []TopAddressEntry `json:"addresses"`
	OrderBy   string            `json:"order_by,omitempty"`
}

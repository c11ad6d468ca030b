package model

// Status is the get_status response.
type Status struct {
	Height        uint64 `json:"height"`
	LastBlockHash string `json:"last_block_hash"`
	NodeID        string `json:"node_id"`
	Version       string `json:"version,omitempty"`
	Network       string `json:"network,omitempty"`
}

// PendingTransactions is the get_pending_transactions response.
type PendingTransactions struct {
	Transactions []Transaction `json:"transactions"`
	Count        int           `json:"count"`
}

// SubmitResult is the submit_tx response.
type SubmitResult struct {
	Hash string `json:"hash"`
}

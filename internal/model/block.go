package model

import "encoding/json"

// Block is a node API block record.
type Block struct {
	Number           uint64          `json:"number"`
	Hash             string          `json:"hash"`
	ParentHash       string          `json:"parent_hash"`
	Timestamp        int64           `json:"timestamp"`
	Miner            string          `json:"miner"`
	Difficulty       string          `json:"difficulty"`
	TotalDifficulty  string          `json:"total_difficulty,omitempty"`
	Size             uint64          `json:"size"`
	GasUsed          string          `json:"gas_used"`
	GasLimit         string          `json:"gas_limit"`
	Nonce            string          `json:"nonce"`
	Transactions     json.RawMessage `json:"transactions"`
	TransactionsRoot string          `json:"transactions_root,omitempty"`
	StateRoot        string          `json:"state_root,omitempty"`
	ReceiptsRoot     string          `json:"receipts_root,omitempty"`
}

// TxHashes returns the block's transaction hashes when the node returned
// hash form, or nil when it returned full transaction objects.
func (b *Block) TxHashes() []string {
	var hashes []string
	if err := json.Unmarshal(b.Transactions, &hashes); err != nil {
		return nil
	}
	return hashes
}

// FullTransactions returns the block's transactions when the node returned
// full objects, normalized, or nil when it returned hashes only.
func (b *Block) FullTransactions() []Transaction {
	var txs []Transaction
	if err := json.Unmarshal(b.Transactions, &txs); err != nil {
		return nil
	}
	for i := range txs {
		txs[i].Normalize()
	}
	return txs
}

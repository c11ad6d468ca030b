package model

// Transaction is a node API transaction record. Optional fields may be
// absent depending on node version; Normalize fills their defaults.
type Transaction struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	Nonce           uint64 `json:"nonce"`
	Timestamp       int64  `json:"timestamp"`
	BlockNumber     uint64 `json:"block_number,omitempty"`
	BlockHash       string `json:"block_hash,omitempty"`
	GasPrice        string `json:"gas_price"`
	GasLimit        string `json:"gas_limit"`
	GasUsed         string `json:"gas_used,omitempty"`
	Status          string `json:"status"`
	Signature       string `json:"signature,omitempty"`
	Data            string `json:"data,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	Logs            []Log  `json:"logs,omitempty"`
}

// Log is a raw event log as emitted on-chain. Topics and data are never
// mutated after ingestion; topic 0 is the event signature hash.
type Log struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	LogIndex    uint64   `json:"log_index"`
	TxIndex     uint64   `json:"transaction_index"`
	BlockNumber uint64   `json:"block_number"`
}

// Transaction statuses reported by the node.
const (
	TxStatusConfirmed = "confirmed"
	TxStatusPending   = "pending"
	TxStatusFailed    = "failed"
)

// Normalize applies defined defaults for fields older nodes omit. It is
// called once at the fetch boundary, not re-checked throughout the core.
func (t *Transaction) Normalize() {
	if t.Value == "" {
		t.Value = "0"
	}
	if t.GasPrice == "" {
		t.GasPrice = "0"
	}
	if t.GasLimit == "" {
		t.GasLimit = "0"
	}
	if t.GasUsed == "" {
		t.GasUsed = "0"
	}
	if t.Status == "" {
		t.Status = TxStatusConfirmed
	}
	if t.Logs == nil {
		t.Logs = []Log{}
	}
}

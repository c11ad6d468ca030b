package model

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	tx := Transaction{Hash: "0x1", From: "0xaa", To: "0xbb", Timestamp: 100}
	tx.Normalize()

	if tx.Value != "0" || tx.GasPrice != "0" || tx.GasLimit != "0" || tx.GasUsed != "0" {
		t.Fatalf("numeric defaults not applied: %+v", tx)
	}
	if tx.Status != TxStatusConfirmed {
		t.Fatalf("status = %q, want %q", tx.Status, TxStatusConfirmed)
	}
	if tx.Logs == nil {
		t.Fatalf("logs must default to an empty slice")
	}
}

func TestNormalizeKeepsPresentFields(t *testing.T) {
	tx := Transaction{
		Value:   "500",
		GasUsed: "21000",
		Status:  TxStatusFailed,
		Logs:    []Log{{Address: "0xt"}},
	}
	tx.Normalize()

	if tx.Value != "500" || tx.GasUsed != "21000" {
		t.Fatalf("present fields overwritten: %+v", tx)
	}
	if tx.Status != TxStatusFailed {
		t.Fatalf("status overwritten: %s", tx.Status)
	}
	if len(tx.Logs) != 1 {
		t.Fatalf("logs overwritten: %+v", tx.Logs)
	}
}

func TestBlockTransactionShapes(t *testing.T) {
	hashBlock := Block{Transactions: []byte(`["0x1", "0x2"]`)}
	hashes := hashBlock.TxHashes()
	if len(hashes) != 2 || hashes[1] != "0x2" {
		t.Fatalf("unexpected hashes %v", hashes)
	}
	if txs := hashBlock.FullTransactions(); txs != nil {
		t.Fatalf("hash-form block must not decode as full transactions")
	}

	fullBlock := Block{Transactions: []byte(`[{"hash": "0x1", "from": "0xaa", "to": "0xbb"}]`)}
	txs := fullBlock.FullTransactions()
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Value != "0" {
		t.Fatalf("full transactions must come back normalized: %+v", txs[0])
	}
	if hashes := fullBlock.TxHashes(); hashes != nil {
		t.Fatalf("full-form block must not decode as hashes")
	}
}

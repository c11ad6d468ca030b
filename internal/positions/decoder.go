package positions

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"qrdxscope/internal/model"
)

// TransferEventSignature is the canonical Transfer(address,address,uint256)
// topic0 hash. Transfer logs are recognized by this signature alone.
const TransferEventSignature = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

// Transfer is a decoded token transfer touching the queried address. The
// amount is kept at full precision until final scaling.
type Transfer struct {
	Token    string
	From     string
	To       string
	Amount   *big.Int
	LogIndex uint64
}

// DecodeTransfers extracts Transfer events from a transaction's logs,
// keeping only transfers where the queried address is sender or receiver
// (compared case-insensitively). Malformed logs are skipped with a warning
// and never abort the remaining logs.
func DecodeTransfers(tx model.Transaction, address string, logger *zap.Logger) []Transfer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(tx.Logs) == 0 {
		return nil
	}

	addr := strings.ToLower(address)
	transfers := make([]Transfer, 0, len(tx.Logs))

	for _, log := range tx.Logs {
		if len(log.Topics) < 3 {
			continue
		}
		if !strings.EqualFold(log.Topics[0], TransferEventSignature) {
			continue
		}

		from, err := addressFromTopic(log.Topics[1])
		if err != nil {
			logger.Warn("skip transfer log",
				zap.String("tx", tx.Hash),
				zap.Uint64("log_index", log.LogIndex),
				zap.Error(err),
			)
			continue
		}
		to, err := addressFromTopic(log.Topics[2])
		if err != nil {
			logger.Warn("skip transfer log",
				zap.String("tx", tx.Hash),
				zap.Uint64("log_index", log.LogIndex),
				zap.Error(err),
			)
			continue
		}

		amount, err := amountFromData(log.Data)
		if err != nil {
			logger.Warn("skip transfer log",
				zap.String("tx", tx.Hash),
				zap.Uint64("log_index", log.LogIndex),
				zap.Error(err),
			)
			continue
		}

		if strings.ToLower(from) != addr && strings.ToLower(to) != addr {
			continue
		}

		transfers = append(transfers, Transfer{
			Token:    log.Address,
			From:     from,
			To:       to,
			Amount:   amount,
			LogIndex: log.LogIndex,
		})
	}

	return transfers
}

// addressFromTopic decodes an indexed address parameter. The chain
// left-pads indexed addresses to 32 bytes, so the trailing 40 hex
// characters are the address.
func addressFromTopic(topic string) (string, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(topic, "0x"), "0X")
	if len(hex) < 40 {
		return "", fmt.Errorf("topic too short for address: %s", topic)
	}
	addr := "0x" + hex[len(hex)-40:]
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("invalid address in topic: %s", topic)
	}
	return addr, nil
}

// amountFromData decodes the non-indexed amount from the log data field as
// an arbitrary-precision integer. Absent or empty data means zero.
func amountFromData(data string) (*big.Int, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(data, "0x"), "0X")
	if hex == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex amount: %s", data)
	}
	return amount, nil
}

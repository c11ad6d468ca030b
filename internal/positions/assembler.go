package positions

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"go.uber.org/zap"

	"qrdxscope/internal/model"
)

// Native asset identifiers. The native asset is transferred via the
// transaction value field, not via contract logs, and is addressed by a
// reserved sentinel rather than a contract address.
const (
	NativeTokenID = "native"
	NativeSymbol  = "qrdx"
)

// IsNativeToken reports whether the token identifier denotes the chain's
// native asset.
func IsNativeToken(id string) bool {
	lower := strings.ToLower(id)
	return lower == NativeTokenID || lower == NativeSymbol
}

// BuildPositions reconstructs the transfer history of one token for one
// address from a bounded transaction window. Positions are sorted newest
// first; USD values are left at zero for a later pricing pass.
func BuildPositions(txs []model.Transaction, address, token string, decimals uint8, logger *zap.Logger) []model.Position {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out []model.Position
	if IsNativeToken(token) {
		out = nativePositions(txs, address, decimals)
	} else {
		out = tokenPositions(txs, address, token, decimals, logger)
	}

	sortPositions(out)
	return out
}

func tokenPositions(txs []model.Transaction, address, token string, decimals uint8, logger *zap.Logger) []model.Position {
	addr := strings.ToLower(address)
	target := strings.ToLower(token)

	positions := make([]model.Position, 0)
	for _, tx := range txs {
		for _, transfer := range DecodeTransfers(tx, address, logger) {
			if strings.ToLower(transfer.Token) != target {
				continue
			}

			direction := model.PositionOutgoing
			if strings.ToLower(transfer.To) == addr {
				direction = model.PositionIncoming
			}

			positions = append(positions, model.Position{
				Hash:      tx.Hash,
				Timestamp: tx.Timestamp,
				LogIndex:  transfer.LogIndex,
				Amount:    scaleAmount(transfer.Amount, decimals),
				Type:      direction,
				From:      transfer.From,
				To:        transfer.To,
			})
		}
	}
	return positions
}

func nativePositions(txs []model.Transaction, address string, decimals uint8) []model.Position {
	addr := strings.ToLower(address)

	positions := make([]model.Position, 0)
	for _, tx := range txs {
		value, err := parseValue(tx.Value)
		if err != nil || value.Sign() == 0 {
			continue
		}

		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)
		if from != addr && to != addr {
			continue
		}

		direction := model.PositionOutgoing
		if to == addr {
			direction = model.PositionIncoming
		}

		positions = append(positions, model.Position{
			Hash:      tx.Hash,
			Timestamp: tx.Timestamp,
			Amount:    scaleAmount(value, decimals),
			Type:      direction,
			From:      tx.From,
			To:        tx.To,
		})
	}
	return positions
}

// parseValue parses a native value string, decimal by default with hex
// accepted for older nodes.
func parseValue(value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return amountFromData(value)
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid value: %s", value)
	}
	return parsed, nil
}

// scaleAmount divides a raw integer amount by 10^decimals, producing an
// exact decimal string. The division happens in big.Rat so arbitrarily
// large raw amounts never round through a float64.
func scaleAmount(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}
	sign := amount.Sign()
	abs := new(big.Int).Abs(amount)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := trimZeros(rat.FloatString(int(decimals)))
	if sign < 0 {
		return "-" + text
	}
	return text
}

func trimZeros(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}

// sortPositions orders newest first; ties fall back to transaction hash
// then log index so repeated runs produce identical output.
func sortPositions(positions []model.Position) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Timestamp != positions[j].Timestamp {
			return positions[i].Timestamp > positions[j].Timestamp
		}
		if positions[i].Hash != positions[j].Hash {
			return positions[i].Hash < positions[j].Hash
		}
		return positions[i].LogIndex < positions[j].LogIndex
	})
}

package pricing

// StubPrices is the development fallback table for when the exchange API
// is unreachable. Keys are uppercased symbols.
var StubPrices = map[string]float64{
	"QRDX": 3500,
	"ETH":  3000,
	"BTC":  60000,
	"USDT": 1,
	"USDC": 1,
	"DAI":  1,
}

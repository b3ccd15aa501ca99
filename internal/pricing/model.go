package pricing

// SimplePriceResponse mirrors the CoinGecko /simple/price payload:
// a map of coin ID to a map of currency to price.
//
//	{"bitcoin": {"usd": 64000.12}, "ethereum": {"usd": 3200.5}}
type SimplePriceResponse map[string]map[string]float64

// coinIDs maps common ticker symbols to CoinGecko coin IDs. Symbols not in
// this table are queried lowercased as-is, which works for many smaller
// coins whose ID matches their name.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"LTC":   "litecoin",
	"XRP":   "ripple",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"ATOM":  "cosmos",
	"USDC":  "usd-coin",
	"USDT":  "tether",
}

package chains

// Asset describes one bridgeable asset on a chain with its base-unit
// decimal count.
type Asset struct {
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Chain is a static descriptor for a supported chain. EVMChainID is 0 for
// non-EVM chains such as the Stellar settlement chain.
type Chain struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	EVMChainID int     `json:"evm_chain_id,omitempty"`
	RPCHint    string  `json:"rpc_hint,omitempty"`
	Assets     []Asset `json:"assets"`
}

// DestinationChain is the fixed settlement chain for payment requests
const DestinationChain = "XLM"

// registry contains the supported chains, source chains first
var registry = []Chain{
	{
		Symbol:     "ETH",
		Name:       "Ethereum",
		Icon:       "/icons/chains/eth.svg",
		EVMChainID: 1,
		RPCHint:    "https://eth.llamarpc.com",
		Assets:     []Asset{{Symbol: "USDC", Decimals: 6}},
	},
	{
		Symbol:     "POL",
		Name:       "Polygon",
		Icon:       "/icons/chains/pol.svg",
		EVMChainID: 137,
		RPCHint:    "https://polygon-rpc.com",
		Assets:     []Asset{{Symbol: "USDC", Decimals: 6}},
	},
	{
		Symbol:     "ARB",
		Name:       "Arbitrum",
		Icon:       "/icons/chains/arb.svg",
		EVMChainID: 42161,
		RPCHint:    "https://arb1.arbitrum.io/rpc",
		Assets:     []Asset{{Symbol: "USDC", Decimals: 6}},
	},
	{
		Symbol:     "BAS",
		Name:       "Base",
		Icon:       "/icons/chains/base.svg",
		EVMChainID: 8453,
		RPCHint:    "https://mainnet.base.org",
		Assets:     []Asset{{Symbol: "USDC", Decimals: 6}},
	},
	{
		Symbol:     "AVA",
		Name:       "Avalanche",
		Icon:       "/icons/chains/ava.svg",
		EVMChainID: 43114,
		RPCHint:    "https://avalanche-c-chain-rpc.publicnode.com",
		Assets:     []Asset{{Symbol: "USDC", Decimals: 6}},
	},
	{
		Symbol:     "BSC",
		Name:       "BNB Chain",
		Icon:       "/icons/chains/bsc.svg",
		EVMChainID: 56,
		RPCHint:    "https://bsc-dataseed.bnbchain.org",
		Assets:     []Asset{{Symbol: "USDC", Decimals: 18}},
	},
	{
		Symbol: "XLM",
		Name:   "Stellar",
		Icon:   "/icons/chains/xlm.svg",
		Assets: []Asset{{Symbol: "USDC", Decimals: 7}},
	},
}

// List returns all supported chains, destination included
func List() []Chain {
	out := make([]Chain, len(registry))
	copy(out, registry)
	return out
}

// Get returns the descriptor for a chain symbol
func Get(symbol string) (Chain, bool) {
	for _, c := range registry {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Chain{}, false
}

// IsSource reports whether the chain can be a payment source. The
// settlement chain cannot fund itself through the bridge.
func IsSource(symbol string) bool {
	c, ok := Get(symbol)
	return ok && c.Symbol != DestinationChain
}

// IsEVM reports whether a chain carries a native EVM chain ID
func IsEVM(symbol string) bool {
	c, ok := Get(symbol)
	return ok && c.EVMChainID != 0
}

// AssetDecimals returns the base-unit decimal count for an asset on a
// chain, or false if the asset is not listed there.
func AssetDecimals(symbol, asset string) (int, bool) {
	c, ok := Get(symbol)
	if !ok {
		return 0, false
	}
	for _, a := range c.Assets {
		if a.Symbol == asset {
			return a.Decimals, true
		}
	}
	return 0, false
}

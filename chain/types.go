package chain

// Wire shapes for the node's REST API. Field spellings drifted across node
// versions (`asset-index` vs `created-asset-index`), so every response is
// normalized into the typed structs the rest of the SDK consumes.

type pendingTxResponse struct {
	ConfirmedRound    uint64 `json:"confirmed-round"`
	AssetIndex        uint64 `json:"asset-index"`
	CreatedAssetIndex uint64 `json:"created-asset-index"`
	PoolError         string `json:"pool-error"`
}

type submitResponse struct {
	TxID string `json:"txId"`
}

type accountResponse struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
	Assets  []struct {
		AssetID uint64 `json:"asset-id"`
		Amount  uint64 `json:"amount"`
	} `json:"assets"`
}

type paramsResponse struct {
	MinFee          uint64 `json:"min-fee"`
	Fee             uint64 `json:"fee"`
	LastRound       uint64 `json:"last-round"`
	GenesisID       string `json:"genesis-id"`
	GenesisHash     string `json:"genesis-hash"`
	ConsensusVersion string `json:"consensus-version"`
}

type apiError struct {
	Message string `json:"message"`
}

// SuggestedParams are the node's current transaction parameters.
type SuggestedParams struct {
	Fee         uint64
	MinFee      uint64
	FirstValid  uint64
	LastValid   uint64
	GenesisID   string
	GenesisHash string
}

// AccountInfo is the holding summary for one address.
type AccountInfo struct {
	Address  string
	Balance  uint64
	Holdings map[uint64]uint64 // asset id -> amount
}

package types

import "time"

// Network identifies which deployment of the chain the SDK talks to.
type Network string

const (
	NetworkMainNet Network = "mainnet"
	NetworkTestNet Network = "testnet"
	NetworkBetaNet Network = "betanet"
)

// SubmitResult contains the result of submitting a signed transaction.
type SubmitResult struct {
	TxID        string
	SubmittedAt time.Time
}

// TransferResult contains the result of a confirmed transfer.
type TransferResult struct {
	TxID    string
	Round   uint64
	AssetID uint64 // non-zero only when the transaction created an asset
}

// RiskResult contains the outcome of a fraud evaluation.
type RiskResult struct {
	Score   float64 // 0..1, higher is riskier
	Verdict string
	Remote  bool // true when the score came from the remote backend
}

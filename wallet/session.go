package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/qchain/sdk-go/chain"
	sdklog "github.com/qchain/sdk-go/pkg/log"
	"github.com/qchain/sdk-go/pkg/txcache"
	"github.com/qchain/sdk-go/types"
)

// NodeAPI is the slice of the node client a wallet session needs.
type NodeAPI interface {
	SubmitRaw(ctx context.Context, rawTx []byte) (types.SubmitResult, error)
	SuggestedParams(ctx context.Context) (chain.SuggestedParams, error)
	Account(ctx context.Context, address string) (chain.AccountInfo, error)
}

// Session holds wallet connection state with an explicit lifecycle: the
// owner calls Initialize once and Teardown when done. Nothing here is a
// package-level singleton.
type Session struct {
	node   NodeAPI
	signer Signer
	cache  *txcache.Cache
	logger sdklog.Logger

	mu          sync.Mutex
	initialized bool
	closed      bool
	balance     uint64
	holdings    map[uint64]uint64
}

// NewSession wires a session; it performs no I/O until Initialize.
func NewSession(node NodeAPI, signer Signer, cache *txcache.Cache, logger sdklog.Logger) (*Session, error) {
	if node == nil {
		return nil, fmt.Errorf("node client is required")
	}
	if signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	if logger == nil {
		logger = sdklog.NoopLogger{}
	}
	return &Session{node: node, signer: signer, cache: cache, logger: logger}, nil
}

// Initialize fetches the account state for the signer's address. Safe to
// call once; subsequent calls just refresh the balance.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return types.ErrSessionClosed
	}
	s.mu.Unlock()

	if _, err := s.RefreshBalance(ctx); err != nil {
		return fmt.Errorf("initialize wallet session: %w", err)
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return nil
}

// Teardown closes the session. Idempotent. Any monitor sessions the caller
// started for this wallet should be cancelled alongside.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Initialized reports whether Initialize has completed successfully.
func (s *Session) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized && !s.closed
}

// Address returns the signer's address.
func (s *Session) Address() string { return s.signer.Address() }

// Balance returns the last refreshed balance.
func (s *Session) Balance() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Holding returns the last refreshed amount for one asset.
func (s *Session) Holding(assetID uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holdings[assetID]
}

// RefreshBalance re-reads account state from the node. Presenters call this
// after each confirmed transaction.
func (s *Session) RefreshBalance(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, types.ErrSessionClosed
	}
	s.mu.Unlock()

	info, err := s.node.Account(ctx, s.signer.Address())
	if err != nil {
		return 0, fmt.Errorf("refresh balance: %w", err)
	}

	s.mu.Lock()
	s.balance = info.Balance
	s.holdings = info.Holdings
	s.mu.Unlock()
	return info.Balance, nil
}

// Recent returns the cached recent transactions, newest first.
func (s *Session) Recent() []txcache.Record {
	if s.cache == nil {
		return nil
	}
	return s.cache.Recent()
}

// RecordConfirmation updates the recent-transaction cache once a monitor
// reports a confirmed round.
func (s *Session) RecordConfirmation(txid string, round, assetID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.MarkConfirmed(txid, round, assetID); err != nil {
		s.logger.Printf("tx cache update failed for %s: %v", txid, err)
	}
}

// unsignedTx is the canonical transaction body presented to the Signer.
// Field order is fixed; the encoded bytes are what gets signed.
type unsignedTx struct {
	Type        string `json:"type"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Amount      uint64 `json:"amount,omitempty"`
	Fee         uint64 `json:"fee"`
	FirstValid  uint64 `json:"firstValid"`
	LastValid   uint64 `json:"lastValid"`
	GenesisID   string `json:"genesisId"`
	Note        []byte `json:"note,omitempty"`
	AssetName   string `json:"assetName,omitempty"`
	UnitName    string `json:"unitName,omitempty"`
	AssetTotal  uint64 `json:"assetTotal,omitempty"`
	AssetDigits uint32 `json:"assetDecimals,omitempty"`
}

type signedEnvelope struct {
	Txn []byte `json:"txn"`
	Sig []byte `json:"sig"`
}

// SendPayment builds, signs and submits a payment, returning the assigned
// transaction id. Confirmation is the monitor's job, not this method's.
func (s *Session) SendPayment(ctx context.Context, to string, amount uint64, note []byte) (types.SubmitResult, error) {
	if to == "" {
		return types.SubmitResult{}, fmt.Errorf("recipient address is required")
	}
	tx := unsignedTx{
		Type:   "pay",
		From:   s.signer.Address(),
		To:     to,
		Amount: amount,
		Note:   note,
	}
	res, err := s.submit(ctx, &tx)
	if err != nil {
		return types.SubmitResult{}, err
	}
	s.remember(res, "payment")
	return res, nil
}

// CreateAsset builds, signs and submits an asset-creation transaction. The
// created asset id only becomes known once the transaction confirms.
func (s *Session) CreateAsset(ctx context.Context, name, unit string, total uint64, decimals uint32) (types.SubmitResult, error) {
	if name == "" {
		return types.SubmitResult{}, fmt.Errorf("asset name is required")
	}
	if total == 0 {
		return types.SubmitResult{}, fmt.Errorf("asset total must be positive")
	}
	tx := unsignedTx{
		Type:        "acfg",
		From:        s.signer.Address(),
		AssetName:   name,
		UnitName:    unit,
		AssetTotal:  total,
		AssetDigits: decimals,
	}
	res, err := s.submit(ctx, &tx)
	if err != nil {
		return types.SubmitResult{}, err
	}
	s.remember(res, "asset-create")
	return res, nil
}

func (s *Session) submit(ctx context.Context, tx *unsignedTx) (types.SubmitResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return types.SubmitResult{}, types.ErrSessionClosed
	}
	s.mu.Unlock()

	params, err := s.node.SuggestedParams(ctx)
	if err != nil {
		return types.SubmitResult{}, fmt.Errorf("fetch params: %w", err)
	}
	tx.Fee = params.Fee
	tx.FirstValid = params.FirstValid
	tx.LastValid = params.LastValid
	tx.GenesisID = params.GenesisID

	payload, err := json.Marshal(tx)
	if err != nil {
		return types.SubmitResult{}, fmt.Errorf("encode tx: %w", err)
	}
	sig, err := s.signer.Sign(ctx, payload)
	if err != nil {
		return types.SubmitResult{}, fmt.Errorf("sign tx: %w", err)
	}

	raw, err := json.Marshal(signedEnvelope{Txn: payload, Sig: sig})
	if err != nil {
		return types.SubmitResult{}, fmt.Errorf("encode envelope: %w", err)
	}

	res, err := s.node.SubmitRaw(ctx, raw)
	if err != nil {
		return types.SubmitResult{}, err
	}
	s.logger.Printf("submitted %s tx %s", tx.Type, res.TxID)
	return res, nil
}

func (s *Session) remember(res types.SubmitResult, kind string) {
	if s.cache == nil {
		return
	}
	rec := txcache.Record{TxID: res.TxID, Kind: kind, SubmittedAt: res.SubmittedAt}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}
	if err := s.cache.Add(rec); err != nil {
		s.logger.Printf("tx cache write failed for %s: %v", res.TxID, err)
	}
}

package chain

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/qchain/sdk-go/txwatch"
	"github.com/qchain/sdk-go/types"
)

// PendingTransaction looks up a transaction in the node's pending pool.
// A pool miss maps to types.ErrNotFound; the pool evicts entries shortly
// after confirmation, so a miss here says nothing final.
func (c *Client) PendingTransaction(ctx context.Context, txid string) (txwatch.PendingResult, error) {
	if txid == "" {
		return txwatch.PendingResult{}, fmt.Errorf("transaction id is required")
	}
	var resp pendingTxResponse
	if err := c.get(ctx, "/v2/transactions/pending/"+url.PathEscape(txid), &resp); err != nil {
		return txwatch.PendingResult{}, err
	}
	return txwatch.PendingResult{
		ConfirmedRound: resp.ConfirmedRound,
		AssetID:        normalizeAssetID(resp.CreatedAssetIndex, resp.AssetIndex),
		PoolError:      resp.PoolError,
	}, nil
}

// SubmitRaw posts signed transaction bytes and returns the assigned id.
func (c *Client) SubmitRaw(ctx context.Context, rawTx []byte) (types.SubmitResult, error) {
	if len(rawTx) == 0 {
		return types.SubmitResult{}, fmt.Errorf("raw transaction is empty")
	}
	var resp submitResponse
	if err := c.post(ctx, "/v2/transactions", rawTx, "application/x-binary", &resp); err != nil {
		return types.SubmitResult{}, fmt.Errorf("submit tx: %w", err)
	}
	if resp.TxID == "" {
		return types.SubmitResult{}, fmt.Errorf("node returned no transaction id")
	}
	return types.SubmitResult{TxID: resp.TxID, SubmittedAt: time.Now().UTC()}, nil
}

// SuggestedParams fetches the node's current transaction parameters.
func (c *Client) SuggestedParams(ctx context.Context) (SuggestedParams, error) {
	var resp paramsResponse
	if err := c.get(ctx, "/v2/transactions/params", &resp); err != nil {
		return SuggestedParams{}, fmt.Errorf("suggested params: %w", err)
	}
	fee := resp.Fee
	if fee == 0 {
		fee = resp.MinFee
	}
	return SuggestedParams{
		Fee:         fee,
		MinFee:      resp.MinFee,
		FirstValid:  resp.LastRound,
		LastValid:   resp.LastRound + validRounds,
		GenesisID:   resp.GenesisID,
		GenesisHash: resp.GenesisHash,
	}, nil
}

// Account fetches the balance and asset holdings for an address.
func (c *Client) Account(ctx context.Context, address string) (AccountInfo, error) {
	if address == "" {
		return AccountInfo{}, fmt.Errorf("address is required")
	}
	var resp accountResponse
	if err := c.get(ctx, "/v2/accounts/"+url.PathEscape(address), &resp); err != nil {
		return AccountInfo{}, fmt.Errorf("account %s: %w", address, err)
	}
	info := AccountInfo{
		Address:  address,
		Balance:  resp.Amount,
		Holdings: make(map[uint64]uint64, len(resp.Assets)),
	}
	for _, a := range resp.Assets {
		info.Holdings[a.AssetID] = a.Amount
	}
	return info, nil
}

// normalizeAssetID picks the created-asset id out of whichever spelling the
// node used.
func normalizeAssetID(created, plain uint64) uint64 {
	if created != 0 {
		return created
	}
	return plain
}

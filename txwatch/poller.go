package txwatch

import (
	"context"
	"errors"

	"github.com/qchain/sdk-go/types"
)

// poller performs one confirmation check against both read paths.
type poller struct {
	node  NodeReader
	index IndexReader
}

// check runs a single attempt. forceIndex consults the slow path even when
// the fast path is still answering, to catch confirmations the pool has
// already evicted. It never returns an error: every failure mode is folded
// into the Status.
func (p *poller) check(ctx context.Context, txid string, forceIndex bool) Status {
	st := Status{TxID: txid, State: StateNotFound}

	pending, fastErr := p.node.PendingTransaction(ctx, txid)
	if fastErr == nil {
		if pending.PoolError != "" {
			st.State = StateError
			st.Message = pending.PoolError
			st.PoolRejected = true
			return st
		}
		if pending.ConfirmedRound >= 1 {
			return p.confirmed(ctx, txid, pending.ConfirmedRound, pending.AssetID)
		}
		st.State = StatePending
		if !forceIndex {
			return st
		}
	}

	rec, slowErr := p.index.LookupTransaction(ctx, txid)
	if slowErr == nil && rec.ConfirmedRound >= 1 {
		return p.confirmed(ctx, txid, rec.ConfirmedRound, rec.AssetID)
	}

	// Fast path still sees the transaction as pending; the index simply has
	// not caught up yet.
	if fastErr == nil {
		return st
	}

	fastNotFound := errors.Is(fastErr, types.ErrNotFound)
	slowNotFound := errors.Is(slowErr, types.ErrNotFound)

	switch {
	case fastNotFound && (slowErr == nil || slowNotFound):
		st.State = StateNotFound
	case slowErr == nil || slowNotFound:
		// Fast path failed structurally but the index is reachable and just
		// empty; keep polling, the index will answer eventually.
		st.State = StateNotFound
		st.Message = fastErr.Error()
	default:
		st.State = StateError
		if fastNotFound {
			st.Message = slowErr.Error()
		} else {
			st.Message = fastErr.Error()
		}
	}
	return st
}

// confirmed builds a terminal Confirmed status, enriching it with the
// created-asset id when the primary record lacked one. Enrichment failure
// never downgrades the result.
func (p *poller) confirmed(ctx context.Context, txid string, round, assetID uint64) Status {
	if assetID == 0 {
		if id, err := p.index.LookupCreatedAsset(ctx, txid); err == nil {
			assetID = id
		}
	}
	return Status{TxID: txid, State: StateConfirmed, Round: round, AssetID: assetID}
}

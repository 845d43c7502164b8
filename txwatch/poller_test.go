package txwatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/qchain/sdk-go/types"
)

type stubNode struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) (PendingResult, error)
}

func (s *stubNode) PendingTransaction(ctx context.Context, txid string) (PendingResult, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	return s.fn(call)
}

func (s *stubNode) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubIndex struct {
	mu         sync.Mutex
	lookups    int
	assetCalls int
	lookupFn   func(call int) (TxRecord, error)
	assetFn    func(call int) (uint64, error)
}

func (s *stubIndex) LookupTransaction(ctx context.Context, txid string) (TxRecord, error) {
	s.mu.Lock()
	s.lookups++
	call := s.lookups
	s.mu.Unlock()
	if s.lookupFn == nil {
		return TxRecord{}, types.ErrNotFound
	}
	return s.lookupFn(call)
}

func (s *stubIndex) LookupCreatedAsset(ctx context.Context, txid string) (uint64, error) {
	s.mu.Lock()
	s.assetCalls++
	call := s.assetCalls
	s.mu.Unlock()
	if s.assetFn == nil {
		return 0, types.ErrNotFound
	}
	return s.assetFn(call)
}

func (s *stubIndex) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func notFoundNode() *stubNode {
	return &stubNode{fn: func(int) (PendingResult, error) { return PendingResult{}, types.ErrNotFound }}
}

func TestCheckFastPathWins(t *testing.T) {
	node := &stubNode{fn: func(int) (PendingResult, error) {
		return PendingResult{ConfirmedRound: 42, AssetID: 777}, nil
	}}
	index := &stubIndex{}
	p := &poller{node: node, index: index}

	st := p.check(context.Background(), "TX1", false)
	if st.State != StateConfirmed || st.Round != 42 || st.AssetID != 777 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if index.lookupCount() != 0 {
		t.Fatalf("slow path should not be queried when fast path confirms")
	}
}

func TestCheckFallsBackToIndex(t *testing.T) {
	index := &stubIndex{lookupFn: func(int) (TxRecord, error) {
		return TxRecord{ConfirmedRound: 5}, nil
	}}
	p := &poller{node: notFoundNode(), index: index}

	st := p.check(context.Background(), "TX1", false)
	if st.State != StateConfirmed || st.Round != 5 {
		t.Fatalf("expected confirmed round 5; got %+v", st)
	}
}

func TestCheckNotFoundIsBenign(t *testing.T) {
	p := &poller{node: notFoundNode(), index: &stubIndex{}}

	st := p.check(context.Background(), "TX1", false)
	if st.State != StateNotFound {
		t.Fatalf("expected not found; got %v", st.State)
	}
}

func TestCheckBothPathsError(t *testing.T) {
	node := &stubNode{fn: func(int) (PendingResult, error) {
		return PendingResult{}, errors.New("rate limited")
	}}
	index := &stubIndex{lookupFn: func(int) (TxRecord, error) {
		return TxRecord{}, errors.New("unreachable")
	}}
	p := &poller{node: node, index: index}

	st := p.check(context.Background(), "TX1", false)
	if st.State != StateError {
		t.Fatalf("expected error state; got %v", st.State)
	}
	if st.Message != "rate limited" {
		t.Fatalf("fast-path message should win; got %q", st.Message)
	}
}

func TestCheckPoolRejection(t *testing.T) {
	node := &stubNode{fn: func(int) (PendingResult, error) {
		return PendingResult{PoolError: "overspend"}, nil
	}}
	p := &poller{node: node, index: &stubIndex{}}

	st := p.check(context.Background(), "TX1", false)
	if st.State != StateError || !st.PoolRejected {
		t.Fatalf("expected pool rejection; got %+v", st)
	}
	if st.Message != "overspend" {
		t.Fatalf("unexpected message: %q", st.Message)
	}
}

func TestCheckEnrichmentFailureKeepsConfirmed(t *testing.T) {
	node := &stubNode{fn: func(int) (PendingResult, error) {
		return PendingResult{ConfirmedRound: 9}, nil
	}}
	index := &stubIndex{assetFn: func(int) (uint64, error) {
		return 0, errors.New("lookup failed")
	}}
	p := &poller{node: node, index: index}

	st := p.check(context.Background(), "TX1", false)
	if st.State != StateConfirmed || st.Round != 9 {
		t.Fatalf("enrichment failure must not downgrade confirmed: %+v", st)
	}
	if st.AssetID != 0 {
		t.Fatalf("expected no asset id; got %d", st.AssetID)
	}
}

func TestCheckForceIndexWhilePending(t *testing.T) {
	node := &stubNode{fn: func(int) (PendingResult, error) {
		return PendingResult{}, nil // pending, round 0
	}}
	index := &stubIndex{lookupFn: func(int) (TxRecord, error) {
		return TxRecord{ConfirmedRound: 12, AssetID: 3}, nil
	}}
	p := &poller{node: node, index: index}

	if st := p.check(context.Background(), "TX1", false); st.State != StatePending {
		t.Fatalf("without forceIndex expected pending; got %v", st.State)
	}
	if index.lookupCount() != 0 {
		t.Fatalf("slow path queried without forceIndex")
	}

	st := p.check(context.Background(), "TX1", true)
	if st.State != StateConfirmed || st.Round != 12 || st.AssetID != 3 {
		t.Fatalf("forceIndex should pick up the indexed confirmation: %+v", st)
	}
}

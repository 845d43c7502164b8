package fraud

import "math"

// Signals are the client-side observations fed into the risk formula.
type Signals struct {
	Amount       uint64 // transfer amount, base units
	Balance      uint64 // sender balance before the transfer
	NewRecipient bool   // recipient never seen in the recent-tx cache
	RecentCount  int    // transfers submitted in the last hour
	RoundTrip    bool   // funds returning to an address we recently paid
}

// Formula weights. Tuned against the same labelled set the remote scorer
// trains on; the local score is the offline fallback, not the authority.
const (
	wBias      = -2.2
	wAmount    = 3.1
	wRecipient = 0.9
	wVelocity  = 0.35
	wRoundTrip = 1.4

	velocityCap = 10
)

// Score computes the local risk score in [0,1]. Pure and deterministic:
// the same signals always produce the same score.
func Score(sig Signals) float64 {
	x := wBias

	if sig.Balance > 0 {
		ratio := float64(sig.Amount) / float64(sig.Balance)
		if ratio > 1 {
			ratio = 1
		}
		x += wAmount * ratio
	} else if sig.Amount > 0 {
		// Spending from an empty account is its own signal.
		x += wAmount
	}

	if sig.NewRecipient {
		x += wRecipient
	}

	velocity := sig.RecentCount
	if velocity > velocityCap {
		velocity = velocityCap
	}
	x += wVelocity * float64(velocity)

	if sig.RoundTrip {
		x += wRoundTrip
	}

	return 1 / (1 + math.Exp(-x))
}

// Verdict buckets a score the way the dashboard presents it.
func Verdict(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.5:
		return "elevated"
	default:
		return "low"
	}
}

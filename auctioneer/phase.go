package auctioneer

import (
	"github.com/ipfs-force-community/vbdesk/types"
)

// Phase maps the caller supplied clock against the auction deadlines. It is a
// pure function, every mutating entry point consults it before touching state.
func Phase(a *types.Auction, now int64) types.Phase {
	switch {
	case now < a.CommitDeadline:
		return types.PhaseCommit
	case now < a.RevealDeadline:
		return types.PhaseReveal
	default:
		return types.PhaseClosed
	}
}

package auctioneer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opencensus.io/stats"

	"github.com/ipfs-force-community/vbdesk/metrics"
	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

// outcome is what settlement decides. It is written onto the auction record
// in one compare-and-set; claims later read it back, settlement itself never
// moves funds.
type outcome struct {
	cancelled     bool
	winner        *types.Bid
	clearingPrice uint64
	forfeitPool   uint64
}

// SettleAuction runs once per auction after the reveal window elapses.
// Exactly one caller transitions the status off Open, every other invocation
// observes ErrAlreadySettled.
func (a *Auctioneer) SettleAuction(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error) {
	mu := a.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status != types.AuctionOpen {
		return nil, ErrAlreadySettled
	}
	if Phase(auction, a.now().Unix()) != types.PhaseClosed {
		return nil, ErrWrongPhase
	}

	bids, err := a.bids.ListBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	out, err := settle(auction, bids)
	if err != nil {
		return nil, err
	}

	if out.cancelled {
		auction.Status = types.AuctionCancelled
	} else {
		auction.Status = types.AuctionSettled
		auction.Winner = out.winner.Bidder
		auction.ClearingPrice = out.clearingPrice
	}
	auction.ForfeitPool = out.forfeitPool

	if err := a.auctions.CompleteAuction(ctx, auction, types.AuctionOpen); err != nil {
		if err == repo.ErrStale {
			return nil, ErrAlreadySettled
		}
		return nil, fmt.Errorf("complete auction: %w", err)
	}

	if out.cancelled {
		stats.Record(ctx, metrics.AuctionCancelledCount.M(1))
		log.Infow("auction cancelled at settlement", "auction", auctionID,
			"reserve", auction.ReservePrice, "forfeits", out.forfeitPool)
	} else {
		stats.Record(ctx, metrics.AuctionSettledCount.M(1))
		log.Infow("auction settled", "auction", auctionID, "winner", auction.Winner,
			"clearing-price", auction.ClearingPrice, "forfeits", out.forfeitPool)
	}
	return auction, nil
}

// settle selects the winner under the first-price rule: the highest revealed
// amount meeting the reserve wins and pays its own bid. Ties go to the
// earliest commitment, then to the smaller bidder encoding so every replica
// picks the same winner. Unrevealed deposits forfeit to the seller.
func settle(auction *types.Auction, bids []*types.Bid) (outcome, error) {
	var out outcome
	for _, b := range bids {
		if !b.Revealed() {
			pool, err := types.AddAmount(out.forfeitPool, b.Deposit)
			if err != nil {
				return outcome{}, err
			}
			out.forfeitPool = pool
			continue
		}
		if *b.RevealedAmount < auction.ReservePrice {
			continue
		}
		if out.winner == nil || beats(b, out.winner) {
			out.winner = b
		}
	}

	if out.winner == nil {
		out.cancelled = true
		return out, nil
	}
	out.clearingPrice = *out.winner.RevealedAmount
	return out, nil
}

// beats reports whether candidate b outranks the current winner w.
func beats(b, w *types.Bid) bool {
	if *b.RevealedAmount != *w.RevealedAmount {
		return *b.RevealedAmount > *w.RevealedAmount
	}
	if b.SubmittedAt != w.SubmittedAt {
		return b.SubmittedAt < w.SubmittedAt
	}
	return bytes.Compare(b.Bidder.Bytes(), w.Bidder.Bytes()) < 0
}

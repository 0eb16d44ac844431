package auctioneer

import (
	"context"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"go.opencensus.io/stats"

	"github.com/ipfs-force-community/vbdesk/metrics"
	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

// The escrow ledger. Settlement writes an outcome, the claim calls below read
// it back and release funds; no claim is reachable from inside settlement.

// ClaimDeposit releases what a bidder is owed once the auction left the Open
// status. It succeeds at most once per bidder; the flip of Claimed is a
// compare-and-set, so a racing duplicate observes ErrAlreadyClaimed and pays
// nothing.
func (a *Auctioneer) ClaimDeposit(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Payout, error) {
	mu := a.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status == types.AuctionOpen {
		return nil, ErrAuctionStillOpen
	}

	bid, err := a.bids.GetBid(ctx, auctionID, bidder)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, ErrNothingToClaim
		}
		return nil, err
	}
	if bid.Claimed {
		return nil, ErrAlreadyClaimed
	}

	payout, err := depositOwed(auction, bid)
	if err != nil {
		return nil, err
	}

	if err := a.bids.MarkClaimed(ctx, auctionID, bidder); err != nil {
		if err == repo.ErrStale {
			return nil, ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("mark claimed: %w", err)
	}

	stats.Record(ctx, metrics.DepositClaimedCount.M(1))
	log.Infow("deposit claimed", "auction", auctionID, "bidder", bidder,
		"amount", payout.Amount, "asset", payout.AssetAmount)
	return payout, nil
}

// ClaimProceeds releases the seller's side: the clearing price plus forfeited
// deposits after settlement, or the asset back after cancellation.
func (a *Auctioneer) ClaimProceeds(ctx context.Context, auctionID uuid.UUID, seller address.Address) (*types.Payout, error) {
	mu := a.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Seller != seller {
		return nil, ErrNotSeller
	}
	if auction.Status == types.AuctionOpen {
		return nil, ErrAuctionStillOpen
	}
	if auction.SellerClaimed {
		return nil, ErrAlreadyClaimed
	}

	payout := &types.Payout{
		AuctionID: auctionID,
		To:        seller,
		AssetKind: auction.AssetKind,
	}
	switch auction.Status {
	case types.AuctionCancelled:
		// No sale: the asset unlocks, forfeits (if any reveal-phase
		// no-shows existed) still go to the seller.
		payout.AssetAmount = auction.AssetAmount
		payout.Amount = auction.ForfeitPool
	case types.AuctionSettled:
		amount, err := types.AddAmount(auction.ClearingPrice, auction.ForfeitPool)
		if err != nil {
			return nil, err
		}
		payout.Amount = amount
	}

	if err := a.auctions.MarkProceedsClaimed(ctx, auctionID); err != nil {
		if err == repo.ErrStale {
			return nil, ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("mark proceeds claimed: %w", err)
	}

	log.Infow("proceeds claimed", "auction", auctionID, "seller", seller,
		"amount", payout.Amount, "asset", payout.AssetAmount)
	return payout, nil
}

// depositOwed fixes what one bid receives under the recorded outcome.
func depositOwed(auction *types.Auction, bid *types.Bid) (*types.Payout, error) {
	payout := &types.Payout{
		AuctionID: auction.ID,
		To:        bid.Bidder,
		AssetKind: auction.AssetKind,
	}

	switch {
	case !bid.Revealed():
		// Forfeited, the deposit went to the seller at settlement.
	case auction.Status == types.AuctionCancelled:
		payout.Amount = bid.Deposit
	case auction.Winner == bid.Bidder:
		// The deposit is credited toward the clearing price, the winner
		// takes the asset plus any excess deposit.
		refund, err := types.SubAmount(bid.Deposit, auction.ClearingPrice)
		if err != nil {
			return nil, err
		}
		payout.Amount = refund
		payout.AssetAmount = auction.AssetAmount
	default:
		payout.Amount = bid.Deposit
	}
	return payout, nil
}

// Escrowed reports the funds still held for an auction: every deposit taken,
// minus what the processed claims released. Settlement moves nothing, so the
// balance only decreases through claims.
func (a *Auctioneer) Escrowed(ctx context.Context, auctionID uuid.UUID) (uint64, error) {
	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return 0, err
	}
	bids, err := a.bids.ListBids(ctx, auctionID)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, b := range bids {
		total, err = types.AddAmount(total, b.Deposit)
		if err != nil {
			return 0, err
		}
	}
	for _, b := range bids {
		if !b.Claimed {
			continue
		}
		payout, err := depositOwed(auction, b)
		if err != nil {
			return 0, err
		}
		total, err = types.SubAmount(total, payout.Amount)
		if err != nil {
			return 0, err
		}
	}
	if auction.SellerClaimed && auction.Status != types.AuctionOpen {
		released := auction.ForfeitPool
		if auction.Status == types.AuctionSettled {
			var err error
			released, err = types.AddAmount(released, auction.ClearingPrice)
			if err != nil {
				return 0, err
			}
		}
		total, err = types.SubAmount(total, released)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

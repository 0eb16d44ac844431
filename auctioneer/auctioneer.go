package auctioneer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats"

	"github.com/ipfs-force-community/vbdesk/commitment"
	"github.com/ipfs-force-community/vbdesk/metrics"
	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

var log = logging.Logger("auctioneer")

// Auctioneer drives the sealed-bid auction lifecycle over the record repos.
// Mutating operations on one auction are serialized through a per-auction
// lock; the repos additionally enforce compare-and-set semantics so racing
// processes against a shared database still resolve to a single winner.
type Auctioneer struct {
	auctions repo.AuctionRepo
	bids     repo.BidRepo

	// now is the externally supplied clock all phase checks use.
	now func() time.Time

	lk    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

type Option func(*Auctioneer)

// WithClock replaces the wall clock, tests move time with it.
func WithClock(now func() time.Time) Option {
	return func(a *Auctioneer) {
		a.now = now
	}
}

func NewAuctioneer(r repo.Repo, opts ...Option) *Auctioneer {
	a := &Auctioneer{
		auctions: r.AuctionRepo(),
		bids:     r.BidRepo(),
		now:      time.Now,
		locks:    map[uuid.UUID]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// auctionLock returns the mutex serializing mutations of one auction.
func (a *Auctioneer) auctionLock(id uuid.UUID) *sync.Mutex {
	a.lk.Lock()
	defer a.lk.Unlock()
	mu, ok := a.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		a.locks[id] = mu
	}
	return mu
}

type CreateAuctionParams struct {
	Seller         address.Address
	AssetAmount    uint64
	AssetKind      string
	ReservePrice   uint64
	MinDeposit     uint64
	CommitDeadline int64
	RevealDeadline int64
}

// CreateAuction opens a new auction and locks the asset into escrow. The
// asset lock is recorded on the auction itself, the seller cannot touch it
// again until cancellation or a settled claim.
func (a *Auctioneer) CreateAuction(ctx context.Context, p CreateAuctionParams) (*types.Auction, error) {
	now := a.now().Unix()
	if p.ReservePrice == 0 {
		return nil, ErrInvalidReservePrice
	}
	if p.AssetAmount == 0 {
		return nil, ErrInvalidAsset
	}
	if p.CommitDeadline <= now || p.RevealDeadline <= p.CommitDeadline {
		return nil, ErrInvalidDeadline
	}

	auction := &types.Auction{
		ID:             uuid.New(),
		Seller:         p.Seller,
		AssetAmount:    p.AssetAmount,
		AssetKind:      p.AssetKind,
		ReservePrice:   p.ReservePrice,
		MinDeposit:     p.MinDeposit,
		CommitDeadline: p.CommitDeadline,
		RevealDeadline: p.RevealDeadline,
		Status:         types.AuctionOpen,
		Winner:         address.Undef,
		CreatedAt:      now,
	}
	if err := a.auctions.SaveAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("save auction: %w", err)
	}

	stats.Record(ctx, metrics.AuctionCreatedCount.M(1))
	log.Infow("auction created", "auction", auction.ID, "seller", auction.Seller,
		"reserve", auction.ReservePrice, "commit-deadline", auction.CommitDeadline)
	return auction, nil
}

// SubmitBid records a commitment and escrows the deposit. Valid only during
// the commit phase of an open auction; a second commitment from the same
// bidder is rejected.
func (a *Auctioneer) SubmitBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address, c commitment.Commitment, deposit uint64) (*types.Bid, error) {
	mu := a.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status != types.AuctionOpen {
		return nil, ErrWrongPhase
	}
	if Phase(auction, a.now().Unix()) != types.PhaseCommit {
		return nil, ErrWrongPhase
	}
	if deposit < auction.MinDeposit {
		return nil, ErrInsufficientDeposit
	}

	bid := &types.Bid{
		AuctionID:   auctionID,
		Bidder:      bidder,
		Commitment:  c,
		Deposit:     deposit,
		SubmittedAt: a.now().Unix(),
	}
	if err := a.bids.CreateBid(ctx, bid); err != nil {
		if err == repo.ErrExists {
			return nil, ErrDuplicateBid
		}
		return nil, fmt.Errorf("create bid: %w", err)
	}

	stats.Record(ctx, metrics.BidSubmittedCount.M(1))
	log.Infow("bid submitted", "auction", auctionID, "bidder", bidder, "deposit", deposit)
	return bid, nil
}

// RevealBid discloses the amount and secret behind a commitment. A reveal
// that fails the hash check leaves the deposit escrowed; the bid counts as
// unrevealed at settlement and forfeits.
func (a *Auctioneer) RevealBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64, secret commitment.Secret) (*types.Bid, error) {
	mu := a.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status != types.AuctionOpen {
		return nil, ErrWrongPhase
	}
	if Phase(auction, a.now().Unix()) != types.PhaseReveal {
		return nil, ErrWrongPhase
	}

	bid, err := a.bids.GetBid(ctx, auctionID, bidder)
	if err != nil {
		return nil, err
	}
	if bid.Revealed() {
		return nil, ErrAlreadyRevealed
	}
	if !commitment.Verify(amount, secret, bidder, bid.Commitment) {
		log.Warnw("reveal rejected", "auction", auctionID, "bidder", bidder)
		return nil, ErrHashMismatch
	}
	// The deposit funds the payment under the first-price rule, a bid it
	// cannot cover would break escrow conservation at settlement.
	if amount > bid.Deposit {
		return nil, ErrDepositBelowBid
	}

	if err := a.bids.SetRevealed(ctx, auctionID, bidder, amount); err != nil {
		if err == repo.ErrStale {
			return nil, ErrAlreadyRevealed
		}
		return nil, fmt.Errorf("set revealed: %w", err)
	}
	bid.RevealedAmount = &amount

	stats.Record(ctx, metrics.BidRevealedCount.M(1))
	log.Infow("bid revealed", "auction", auctionID, "bidder", bidder, "amount", amount)
	return bid, nil
}

// CancelAuction lets the seller withdraw an auction nobody has bid on before
// the reveal window closes. The asset unlocks through ClaimProceeds.
func (a *Auctioneer) CancelAuction(ctx context.Context, auctionID uuid.UUID, seller address.Address) error {
	mu := a.auctionLock(auctionID)
	mu.Lock()
	defer mu.Unlock()

	auction, err := a.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	if auction.Seller != seller {
		return ErrNotSeller
	}
	if auction.Status != types.AuctionOpen {
		return ErrAlreadySettled
	}
	if Phase(auction, a.now().Unix()) == types.PhaseClosed {
		return ErrWrongPhase
	}

	bids, err := a.bids.ListBids(ctx, auctionID)
	if err != nil {
		return err
	}
	if len(bids) > 0 {
		return ErrAuctionHasBids
	}

	auction.Status = types.AuctionCancelled
	if err := a.auctions.CompleteAuction(ctx, auction, types.AuctionOpen); err != nil {
		if err == repo.ErrStale {
			return ErrAlreadySettled
		}
		return fmt.Errorf("cancel auction: %w", err)
	}

	stats.Record(ctx, metrics.AuctionCancelledCount.M(1))
	log.Infow("auction cancelled by seller", "auction", auctionID)
	return nil
}

// GetAuction returns one auction record.
func (a *Auctioneer) GetAuction(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error) {
	return a.auctions.GetAuction(ctx, auctionID)
}

// ListAuctions returns every auction record.
func (a *Auctioneer) ListAuctions(ctx context.Context) ([]*types.Auction, error) {
	return a.auctions.ListAuction(ctx)
}

// GetBid returns one bid record.
func (a *Auctioneer) GetBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error) {
	return a.bids.GetBid(ctx, auctionID, bidder)
}

// ListBids returns every bid for an auction.
func (a *Auctioneer) ListBids(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error) {
	return a.bids.ListBids(ctx, auctionID)
}

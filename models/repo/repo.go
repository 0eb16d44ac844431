package repo

import (
	"context"
	"errors"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"github.com/ipfs/go-datastore"
	"gorm.io/gorm"

	"github.com/ipfs-force-community/vbdesk/types"
)

// AuctionRepo stores auction records keyed by auction id.
type AuctionRepo interface {
	SaveAuction(ctx context.Context, a *types.Auction) error
	GetAuction(ctx context.Context, id uuid.UUID) (*types.Auction, error)
	ListAuction(ctx context.Context) ([]*types.Auction, error)
	// CompleteAuction persists a settlement or cancellation outcome, but
	// only if the stored status still equals expect. A racing writer that
	// completed first surfaces as ErrStale.
	CompleteAuction(ctx context.Context, a *types.Auction, expect types.AuctionStatus) error
	// MarkProceedsClaimed flips SellerClaimed false to true exactly once,
	// ErrStale if it was already set.
	MarkProceedsClaimed(ctx context.Context, id uuid.UUID) error
}

// BidRepo stores bid records keyed by (auction id, bidder).
type BidRepo interface {
	// CreateBid inserts a new bid, ErrExists if the (auction, bidder) key
	// is already taken. Resubmission is a policy error, never an update.
	CreateBid(ctx context.Context, b *types.Bid) error
	GetBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error)
	ListBids(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error)
	// SetRevealed records the revealed amount once, ErrStale if the bid
	// already carries one.
	SetRevealed(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64) error
	// MarkClaimed flips Claimed false to true exactly once, ErrStale if it
	// was already set.
	MarkClaimed(ctx context.Context, auctionID uuid.UUID, bidder address.Address) error
}

type Repo interface {
	AuctionRepo() AuctionRepo
	BidRepo() BidRepo
	Migrate() error
	Close() error
}

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
	// ErrStale marks a lost compare-and-set race: the record moved past the
	// expected state before this writer got there.
	ErrStale = errors.New("record changed concurrently")
)

func UniformNotFoundErrors() {
	datastore.ErrNotFound = ErrNotFound
	gorm.ErrRecordNotFound = ErrNotFound
}

func init() {
	UniformNotFoundErrors()
}

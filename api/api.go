package api

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"

	"github.com/ipfs-force-community/vbdesk/auctioneer"
	"github.com/ipfs-force-community/vbdesk/commitment"
	"github.com/ipfs-force-community/vbdesk/types"
)

// VBDesk is the full RPC surface of the auction desk.
type VBDesk interface {
	CreateAuction(ctx context.Context, p auctioneer.CreateAuctionParams) (*types.Auction, error)
	SubmitBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address, c commitment.Commitment, deposit uint64) (*types.Bid, error)
	RevealBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64, secret commitment.Secret) (*types.Bid, error)
	SettleAuction(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error)
	CancelAuction(ctx context.Context, auctionID uuid.UUID, seller address.Address) error

	ClaimDeposit(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Payout, error)
	ClaimProceeds(ctx context.Context, auctionID uuid.UUID, seller address.Address) (*types.Payout, error)
	Escrowed(ctx context.Context, auctionID uuid.UUID) (uint64, error)

	GetAuction(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error)
	ListAuctions(ctx context.Context) ([]*types.Auction, error)
	GetBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error)
	ListBids(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error)
}

var _ VBDesk = (*auctioneer.Auctioneer)(nil)

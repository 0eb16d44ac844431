package api

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"

	"github.com/ipfs-force-community/vbdesk/auctioneer"
	"github.com/ipfs-force-community/vbdesk/commitment"
	"github.com/ipfs-force-community/vbdesk/types"
)

// VBDeskStruct is the call-by-field proxy the JSON-RPC client fills in.
type VBDeskStruct struct {
	Internal struct {
		CreateAuction func(ctx context.Context, p auctioneer.CreateAuctionParams) (*types.Auction, error)
		SubmitBid     func(ctx context.Context, auctionID uuid.UUID, bidder address.Address, c commitment.Commitment, deposit uint64) (*types.Bid, error)
		RevealBid     func(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64, secret commitment.Secret) (*types.Bid, error)
		SettleAuction func(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error)
		CancelAuction func(ctx context.Context, auctionID uuid.UUID, seller address.Address) error

		ClaimDeposit  func(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Payout, error)
		ClaimProceeds func(ctx context.Context, auctionID uuid.UUID, seller address.Address) (*types.Payout, error)
		Escrowed      func(ctx context.Context, auctionID uuid.UUID) (uint64, error)

		GetAuction   func(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error)
		ListAuctions func(ctx context.Context) ([]*types.Auction, error)
		GetBid       func(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error)
		ListBids     func(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error)
	}
}

var _ VBDesk = (*VBDeskStruct)(nil)

func (s *VBDeskStruct) CreateAuction(ctx context.Context, p auctioneer.CreateAuctionParams) (*types.Auction, error) {
	return s.Internal.CreateAuction(ctx, p)
}

func (s *VBDeskStruct) SubmitBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address, c commitment.Commitment, deposit uint64) (*types.Bid, error) {
	return s.Internal.SubmitBid(ctx, auctionID, bidder, c, deposit)
}

func (s *VBDeskStruct) RevealBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64, secret commitment.Secret) (*types.Bid, error) {
	return s.Internal.RevealBid(ctx, auctionID, bidder, amount, secret)
}

func (s *VBDeskStruct) SettleAuction(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error) {
	return s.Internal.SettleAuction(ctx, auctionID)
}

func (s *VBDeskStruct) CancelAuction(ctx context.Context, auctionID uuid.UUID, seller address.Address) error {
	return s.Internal.CancelAuction(ctx, auctionID, seller)
}

func (s *VBDeskStruct) ClaimDeposit(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Payout, error) {
	return s.Internal.ClaimDeposit(ctx, auctionID, bidder)
}

func (s *VBDeskStruct) ClaimProceeds(ctx context.Context, auctionID uuid.UUID, seller address.Address) (*types.Payout, error) {
	return s.Internal.ClaimProceeds(ctx, auctionID, seller)
}

func (s *VBDeskStruct) Escrowed(ctx context.Context, auctionID uuid.UUID) (uint64, error) {
	return s.Internal.Escrowed(ctx, auctionID)
}

func (s *VBDeskStruct) GetAuction(ctx context.Context, auctionID uuid.UUID) (*types.Auction, error) {
	return s.Internal.GetAuction(ctx, auctionID)
}

func (s *VBDeskStruct) ListAuctions(ctx context.Context) ([]*types.Auction, error) {
	return s.Internal.ListAuctions(ctx)
}

func (s *VBDeskStruct) GetBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error) {
	return s.Internal.GetBid(ctx, auctionID, bidder)
}

func (s *VBDeskStruct) ListBids(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error) {
	return s.Internal.ListBids(ctx, auctionID)
}

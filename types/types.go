package types

import (
	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"

	"github.com/ipfs-force-community/vbdesk/commitment"
)

type AuctionStatus uint64

const (
	AuctionUnknown AuctionStatus = iota
	// AuctionOpen accepts bids and reveals until its deadlines pass.
	AuctionOpen
	// AuctionSettled is terminal, a winner and clearing price are recorded.
	AuctionSettled
	// AuctionCancelled is terminal, the asset returns to the seller.
	AuctionCancelled
)

func (s AuctionStatus) String() string {
	switch s {
	case AuctionOpen:
		return "Open"
	case AuctionSettled:
		return "Settled"
	case AuctionCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Phase is derived from the auction deadlines against a caller supplied
// clock, it is never stored.
type Phase uint64

const (
	PhaseCommit Phase = iota
	PhaseReveal
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseCommit:
		return "Commit"
	case PhaseReveal:
		return "Reveal"
	default:
		return "Closed"
	}
}

// Auction is the durable record of one sealed-bid auction. It is created by
// the seller, mutated only when settlement or cancellation flips Status, and
// never deleted so that claims stay processable.
type Auction struct {
	ID     uuid.UUID
	Seller address.Address

	// Asset under the hammer, locked into escrow at creation.
	AssetAmount uint64
	AssetKind   string

	ReservePrice uint64
	MinDeposit   uint64

	// Unix seconds. CommitDeadline < RevealDeadline always holds.
	CommitDeadline int64
	RevealDeadline int64

	Status AuctionStatus

	// Settlement outcome. Winner is address.Undef and ClearingPrice zero
	// until Status == AuctionSettled.
	Winner        address.Address
	ClearingPrice uint64
	// ForfeitPool is the sum of unrevealed deposits redirected to the
	// seller at settlement.
	ForfeitPool uint64
	// SellerClaimed flips once the seller has withdrawn proceeds (or the
	// asset, after cancellation).
	SellerClaimed bool

	CreatedAt int64
	UpdatedAt int64
}

// Bid is one bidder's entry in the ledger, keyed by (AuctionID, Bidder).
type Bid struct {
	AuctionID uuid.UUID
	Bidder    address.Address

	// Commitment is sha256(amount || secret || bidder), see the commitment
	// package.
	Commitment commitment.Commitment
	Deposit    uint64

	// RevealedAmount is set at most once, by a reveal whose commitment
	// check passed.
	RevealedAmount *uint64

	// SubmittedAt orders bids for the settlement tie-break.
	SubmittedAt int64

	Claimed bool
}

// Revealed reports whether the bid passed a commitment check in time.
func (b *Bid) Revealed() bool {
	return b.RevealedAmount != nil
}

// Payout is a transfer instruction produced by the escrow ledger. Executing
// it (moving actual funds or the asset) is the caller's business.
type Payout struct {
	AuctionID uuid.UUID
	To        address.Address
	// Amount of escrowed payment units released.
	Amount uint64
	// AssetAmount released, non-zero only for the winner's claim and the
	// seller's claim after cancellation.
	AssetAmount uint64
	AssetKind   string
}

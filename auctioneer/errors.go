package auctioneer

import "errors"

// The closed error taxonomy callers dispatch on. Every operation either fully
// applies or fails with one of these before any state is touched.
var (
	ErrInvalidDeadline     = errors.New("commit deadline must be in the future and before the reveal deadline")
	ErrInvalidReservePrice = errors.New("reserve price must be positive")
	ErrInvalidAsset        = errors.New("asset amount must be positive")

	ErrWrongPhase          = errors.New("operation not allowed in current auction phase")
	ErrInsufficientDeposit = errors.New("deposit below auction minimum")
	ErrDuplicateBid        = errors.New("bidder already committed to this auction")

	ErrHashMismatch     = errors.New("reveal does not match stored commitment")
	ErrAlreadyRevealed  = errors.New("bid already revealed")
	ErrDepositBelowBid  = errors.New("revealed amount exceeds escrowed deposit")
	ErrAlreadySettled   = errors.New("auction already settled or cancelled")
	ErrAuctionHasBids   = errors.New("auction with bids cannot be cancelled")
	ErrNotSeller        = errors.New("caller is not the auction seller")
	ErrAuctionStillOpen = errors.New("auction not yet settled")
	ErrNothingToClaim   = errors.New("no bid to claim for this bidder")
	ErrAlreadyClaimed   = errors.New("claim already processed")
)

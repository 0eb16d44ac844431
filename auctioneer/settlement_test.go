package auctioneer

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipfs-force-community/vbdesk/types"
)

func revealedBid(bidder address.Address, deposit, amount uint64, submittedAt int64) *types.Bid {
	return &types.Bid{
		Bidder:         bidder,
		Deposit:        deposit,
		RevealedAmount: &amount,
		SubmittedAt:    submittedAt,
	}
}

func sealedBid(bidder address.Address, deposit uint64) *types.Bid {
	return &types.Bid{
		Bidder:  bidder,
		Deposit: deposit,
	}
}

func TestSettle(t *testing.T) {
	b1, err := address.NewIDAddress(101)
	require.NoError(t, err)
	b2, err := address.NewIDAddress(102)
	require.NoError(t, err)
	b3, err := address.NewIDAddress(103)
	require.NoError(t, err)

	auction := &types.Auction{ID: uuid.New(), ReservePrice: 100}

	t.Run("highest revealed bid wins at its own price", func(t *testing.T) {
		out, err := settle(auction, []*types.Bid{
			revealedBid(b1, 200, 150, 10),
			revealedBid(b2, 200, 120, 11),
		})
		require.NoError(t, err)
		assert.False(t, out.cancelled)
		assert.Equal(t, b1, out.winner.Bidder)
		assert.Equal(t, uint64(150), out.clearingPrice)
		assert.Equal(t, uint64(0), out.forfeitPool)
	})

	t.Run("bids below reserve never win", func(t *testing.T) {
		out, err := settle(auction, []*types.Bid{
			revealedBid(b1, 200, 99, 10),
			revealedBid(b2, 200, 50, 11),
		})
		require.NoError(t, err)
		assert.True(t, out.cancelled)
		assert.Nil(t, out.winner)
	})

	t.Run("no bids cancels", func(t *testing.T) {
		out, err := settle(auction, nil)
		require.NoError(t, err)
		assert.True(t, out.cancelled)
	})

	t.Run("unrevealed deposits forfeit", func(t *testing.T) {
		out, err := settle(auction, []*types.Bid{
			revealedBid(b1, 200, 150, 10),
			sealedBid(b2, 180),
			sealedBid(b3, 70),
		})
		require.NoError(t, err)
		assert.Equal(t, b1, out.winner.Bidder)
		assert.Equal(t, uint64(250), out.forfeitPool)
	})

	t.Run("forfeits accrue even when cancelled", func(t *testing.T) {
		out, err := settle(auction, []*types.Bid{
			sealedBid(b1, 500),
		})
		require.NoError(t, err)
		assert.True(t, out.cancelled)
		assert.Equal(t, uint64(500), out.forfeitPool)
	})

	t.Run("tie goes to earliest commitment", func(t *testing.T) {
		out, err := settle(auction, []*types.Bid{
			revealedBid(b2, 200, 150, 20),
			revealedBid(b1, 200, 150, 10),
		})
		require.NoError(t, err)
		assert.Equal(t, b1, out.winner.Bidder)
	})

	t.Run("full tie breaks on bidder bytes", func(t *testing.T) {
		out, err := settle(auction, []*types.Bid{
			revealedBid(b2, 200, 150, 10),
			revealedBid(b1, 200, 150, 10),
		})
		require.NoError(t, err)
		assert.Equal(t, b1, out.winner.Bidder)
	})
}

func TestBeats(t *testing.T) {
	b1, err := address.NewIDAddress(101)
	require.NoError(t, err)
	b2, err := address.NewIDAddress(102)
	require.NoError(t, err)

	assert.True(t, beats(revealedBid(b1, 0, 200, 10), revealedBid(b2, 0, 150, 5)))
	assert.False(t, beats(revealedBid(b1, 0, 150, 5), revealedBid(b2, 0, 200, 10)))
	assert.True(t, beats(revealedBid(b1, 0, 150, 5), revealedBid(b2, 0, 150, 10)))
	assert.False(t, beats(revealedBid(b2, 0, 150, 10), revealedBid(b1, 0, 150, 10)))
}

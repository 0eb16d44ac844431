package mysql

import (
	"context"
	"crypto/rand"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipfs-force-community/vbdesk/commitment"
	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

var bidColumns = []string{
	"auction_id", "bidder", "commitment", "deposit", "revealed_amount",
	"submitted_at", "claimed",
}

func testBid(t *testing.T, amount uint64) *types.Bid {
	bidder, err := address.NewIDAddress(200)
	require.NoError(t, err)
	secret, err := commitment.NewSecret(rand.Reader)
	require.NoError(t, err)
	return &types.Bid{
		AuctionID:   uuid.New(),
		Bidder:      bidder,
		Commitment:  commitment.Commit(amount, secret, bidder),
		Deposit:     amount,
		SubmittedAt: time.Now().Unix(),
	}
}

func TestCreateBid(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	b := testBid(t, 150)
	m := fromBid(b)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `bids` (`auction_id`,`bidder`,`commitment`,`deposit`,`revealed_amount`,`submitted_at`,`claimed`) VALUES (?,?,?,?,?,?,?)")).
		WithArgs(m.AuctionID, m.Bidder, m.Commitment, m.Deposit, nil, m.SubmittedAt, m.Claimed).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.BidRepo().CreateBid(context.Background(), b))
}

func TestGetBid(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	b := testBid(t, 150)
	m := fromBid(b)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bids` WHERE auction_id = ? AND bidder = ? LIMIT 1")).
		WithArgs(m.AuctionID, m.Bidder).
		WillReturnRows(sqlmock.NewRows(bidColumns).
			AddRow(m.AuctionID, m.Bidder, m.Commitment, m.Deposit, nil, m.SubmittedAt, m.Claimed))

	res, err := r.BidRepo().GetBid(context.Background(), b.AuctionID, b.Bidder)
	assert.NoError(t, err)
	assert.Equal(t, b, res)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bids` WHERE auction_id = ? AND bidder = ? LIMIT 1")).
		WithArgs(m.AuctionID, m.Bidder).
		WillReturnRows(sqlmock.NewRows(bidColumns))
	_, err = r.BidRepo().GetBid(context.Background(), b.AuctionID, b.Bidder)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListBids(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	b1, b2 := testBid(t, 100), testBid(t, 200)
	b2.AuctionID = b1.AuctionID
	m1, m2 := fromBid(b1), fromBid(b2)

	amount := uint64(200)
	m2.RevealedAmount = &amount
	b2.RevealedAmount = &amount

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bids` WHERE auction_id = ?")).
		WithArgs(m1.AuctionID).
		WillReturnRows(sqlmock.NewRows(bidColumns).
			AddRow(m1.AuctionID, m1.Bidder, m1.Commitment, m1.Deposit, nil, m1.SubmittedAt, m1.Claimed).
			AddRow(m2.AuctionID, m2.Bidder, m2.Commitment, m2.Deposit, *m2.RevealedAmount, m2.SubmittedAt, m2.Claimed))

	res, err := r.BidRepo().ListBids(context.Background(), b1.AuctionID)
	assert.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, b1, res[0])
	assert.Equal(t, b2, res[1])
}

func TestSetRevealed(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	b := testBid(t, 150)
	m := fromBid(b)
	updateSQL := regexp.QuoteMeta("UPDATE `bids` SET `revealed_amount`=? WHERE auction_id = ? AND bidder = ? AND revealed_amount IS NULL")

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(uint64(150), m.AuctionID, m.Bidder).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.BidRepo().SetRevealed(context.Background(), b.AuctionID, b.Bidder, 150))

	// a second reveal finds no unrevealed row
	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(uint64(150), m.AuctionID, m.Bidder).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `bids` WHERE auction_id = ? AND bidder = ?")).
		WithArgs(m.AuctionID, m.Bidder).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	assert.ErrorIs(t, r.BidRepo().SetRevealed(context.Background(), b.AuctionID, b.Bidder, 150), repo.ErrStale)
}

func TestMarkClaimed(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	b := testBid(t, 150)
	m := fromBid(b)
	updateSQL := regexp.QuoteMeta("UPDATE `bids` SET `claimed`=? WHERE auction_id = ? AND bidder = ? AND claimed = ?")

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(true, m.AuctionID, m.Bidder, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.BidRepo().MarkClaimed(context.Background(), b.AuctionID, b.Bidder))

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(true, m.AuctionID, m.Bidder, false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `bids` WHERE auction_id = ? AND bidder = ?")).
		WithArgs(m.AuctionID, m.Bidder).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	assert.ErrorIs(t, r.BidRepo().MarkClaimed(context.Background(), b.AuctionID, b.Bidder), repo.ErrNotFound)
}

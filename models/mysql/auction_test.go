package mysql

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

var auctionColumns = []string{
	"id", "seller", "asset_amount", "asset_kind", "reserve_price", "min_deposit",
	"commit_deadline", "reveal_deadline", "status", "winner", "clearing_price",
	"forfeit_pool", "seller_claimed", "created_at", "updated_at",
}

func testAuction(t *testing.T) *types.Auction {
	seller, err := address.NewIDAddress(100)
	require.NoError(t, err)
	now := time.Now().Unix()
	return &types.Auction{
		ID:             uuid.New(),
		Seller:         seller,
		AssetAmount:    1000,
		AssetKind:      "FIL",
		ReservePrice:   100,
		MinDeposit:     50,
		CommitDeadline: now + 3600,
		RevealDeadline: now + 7200,
		Status:         types.AuctionOpen,
		Winner:         address.Undef,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func auctionRow(m *mysqlAuction) []driverValue {
	return []driverValue{
		m.ID, m.Seller, m.AssetAmount, m.AssetKind, m.ReservePrice, m.MinDeposit,
		m.CommitDeadline, m.RevealDeadline, m.Status, m.Winner, m.ClearingPrice,
		m.ForfeitPool, m.SellerClaimed, m.CreatedAt, m.UpdatedAt,
	}
}

type driverValue = driver.Value

func TestSaveAuction(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	a := testAuction(t)
	m := fromAuction(a)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `auctions` SET `seller`=?,`asset_amount`=?,`asset_kind`=?,`reserve_price`=?,`min_deposit`=?,`commit_deadline`=?,`reveal_deadline`=?,`status`=?,`winner`=?,`clearing_price`=?,`forfeit_pool`=?,`seller_claimed`=?,`created_at`=?,`updated_at`=? WHERE `id` = ?")).
		WithArgs(m.Seller, m.AssetAmount, m.AssetKind, m.ReservePrice, m.MinDeposit,
			m.CommitDeadline, m.RevealDeadline, m.Status, m.Winner, m.ClearingPrice,
			m.ForfeitPool, m.SellerClaimed, m.CreatedAt, sqlmock.AnyArg(), m.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.AuctionRepo().SaveAuction(context.Background(), a))
}

func TestGetAuction(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	a := testAuction(t)
	m := fromAuction(a)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `auctions` WHERE id = ? LIMIT 1")).
		WithArgs(m.ID).
		WillReturnRows(sqlmock.NewRows(auctionColumns).AddRow(auctionRow(m)...))

	res, err := r.AuctionRepo().GetAuction(context.Background(), a.ID)
	assert.NoError(t, err)
	assert.Equal(t, a, res)

	missing := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `auctions` WHERE id = ? LIMIT 1")).
		WithArgs(missing.String()).
		WillReturnRows(sqlmock.NewRows(auctionColumns))
	_, err = r.AuctionRepo().GetAuction(context.Background(), missing)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListAuction(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	a1, a2 := testAuction(t), testAuction(t)
	rows := sqlmock.NewRows(auctionColumns).
		AddRow(auctionRow(fromAuction(a1))...).
		AddRow(auctionRow(fromAuction(a2))...)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `auctions`")).WillReturnRows(rows)

	res, err := r.AuctionRepo().ListAuction(context.Background())
	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, a1, res[0])
	assert.Equal(t, a2, res[1])
}

func TestCompleteAuction(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	a := testAuction(t)
	winner, err := address.NewIDAddress(999)
	require.NoError(t, err)
	a.Status = types.AuctionSettled
	a.Winner = winner
	a.ClearingPrice = 150
	a.ForfeitPool = 60

	updateSQL := regexp.QuoteMeta("UPDATE `auctions` SET `clearing_price`=?,`forfeit_pool`=?,`status`=?,`updated_at`=?,`winner`=? WHERE id = ? AND status = ?")

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(a.ClearingPrice, a.ForfeitPool, uint64(types.AuctionSettled), sqlmock.AnyArg(), winner.String(), a.ID.String(), uint64(types.AuctionOpen)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.AuctionRepo().CompleteAuction(context.Background(), a, types.AuctionOpen))

	// lost race: zero rows updated but the record exists
	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(a.ClearingPrice, a.ForfeitPool, uint64(types.AuctionSettled), sqlmock.AnyArg(), winner.String(), a.ID.String(), uint64(types.AuctionOpen)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `auctions` WHERE id = ?")).
		WithArgs(a.ID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	assert.ErrorIs(t, r.AuctionRepo().CompleteAuction(context.Background(), a, types.AuctionOpen), repo.ErrStale)
}

func TestMarkProceedsClaimed(t *testing.T) {
	r, mock, sqlDB := setup(t)
	defer func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}()

	a := testAuction(t)
	updateSQL := regexp.QuoteMeta("UPDATE `auctions` SET `seller_claimed`=?,`updated_at`=? WHERE id = ? AND seller_claimed = ?")

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(true, sqlmock.AnyArg(), a.ID.String(), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.AuctionRepo().MarkProceedsClaimed(context.Background(), a.ID))

	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs(true, sqlmock.AnyArg(), a.ID.String(), false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `auctions` WHERE id = ?")).
		WithArgs(a.ID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	assert.ErrorIs(t, r.AuctionRepo().MarkProceedsClaimed(context.Background(), a.ID), repo.ErrStale)
}

package mysql

import (
	"context"
	"errors"

	"github.com/filecoin-project/go-address"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ipfs-force-community/vbdesk/commitment"
	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

type mysqlBid struct {
	AuctionID      string  `gorm:"column:auction_id;type:varchar(36);primary_key"`
	Bidder         string  `gorm:"column:bidder;type:varchar(256);primary_key"`
	Commitment     string  `gorm:"column:commitment;type:varchar(64);NOT NULL"`
	Deposit        uint64  `gorm:"column:deposit;type:bigint unsigned;NOT NULL"`
	RevealedAmount *uint64 `gorm:"column:revealed_amount;type:bigint unsigned"`
	SubmittedAt    int64   `gorm:"column:submitted_at;type:bigint;NOT NULL"`
	Claimed        bool    `gorm:"column:claimed;default:false"`
}

func (m *mysqlBid) TableName() string {
	return "bids"
}

func fromBid(src *types.Bid) *mysqlBid {
	return &mysqlBid{
		AuctionID:      src.AuctionID.String(),
		Bidder:         src.Bidder.String(),
		Commitment:     src.Commitment.String(),
		Deposit:        src.Deposit,
		RevealedAmount: src.RevealedAmount,
		SubmittedAt:    src.SubmittedAt,
		Claimed:        src.Claimed,
	}
}

func toBid(src *mysqlBid) (*types.Bid, error) {
	auctionID, err := uuid.Parse(src.AuctionID)
	if err != nil {
		return nil, err
	}
	bidder, err := address.NewFromString(src.Bidder)
	if err != nil {
		return nil, err
	}
	var c commitment.Commitment
	if err := c.UnmarshalText([]byte(src.Commitment)); err != nil {
		return nil, err
	}
	return &types.Bid{
		AuctionID:      auctionID,
		Bidder:         bidder,
		Commitment:     c,
		Deposit:        src.Deposit,
		RevealedAmount: src.RevealedAmount,
		SubmittedAt:    src.SubmittedAt,
		Claimed:        src.Claimed,
	}, nil
}

type bidRepo struct {
	*gorm.DB
}

var _ repo.BidRepo = (*bidRepo)(nil)

func NewBidRepo(db *gorm.DB) repo.BidRepo {
	return &bidRepo{db}
}

func (r *bidRepo) CreateBid(ctx context.Context, b *types.Bid) error {
	err := r.WithContext(ctx).Create(fromBid(b)).Error
	var me *mysqldriver.MySQLError
	if errors.As(err, &me) && me.Number == 1062 { // ER_DUP_ENTRY
		return repo.ErrExists
	}
	return err
}

func (r *bidRepo) GetBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error) {
	var m mysqlBid
	err := r.WithContext(ctx).Take(&m, "auction_id = ? AND bidder = ?", auctionID.String(), bidder.String()).Error
	if err != nil {
		return nil, err
	}
	return toBid(&m)
}

func (r *bidRepo) ListBids(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error) {
	var ms []*mysqlBid
	if err := r.WithContext(ctx).Find(&ms, "auction_id = ?", auctionID.String()).Error; err != nil {
		return nil, err
	}
	bids := make([]*types.Bid, 0, len(ms))
	for _, m := range ms {
		b, err := toBid(m)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}

func (r *bidRepo) SetRevealed(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64) error {
	ret := r.WithContext(ctx).Model(&mysqlBid{}).
		Where("auction_id = ? AND bidder = ? AND revealed_amount IS NULL", auctionID.String(), bidder.String()).
		Update("revealed_amount", amount)
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return r.casMiss(ctx, auctionID, bidder)
	}
	return nil
}

func (r *bidRepo) MarkClaimed(ctx context.Context, auctionID uuid.UUID, bidder address.Address) error {
	ret := r.WithContext(ctx).Model(&mysqlBid{}).
		Where("auction_id = ? AND bidder = ? AND claimed = ?", auctionID.String(), bidder.String(), false).
		Update("claimed", true)
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return r.casMiss(ctx, auctionID, bidder)
	}
	return nil
}

func (r *bidRepo) casMiss(ctx context.Context, auctionID uuid.UUID, bidder address.Address) error {
	var count int64
	err := r.WithContext(ctx).Model(&mysqlBid{}).
		Where("auction_id = ? AND bidder = ?", auctionID.String(), bidder.String()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return repo.ErrNotFound
	}
	return repo.ErrStale
}

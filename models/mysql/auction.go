package mysql

import (
	"context"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

type mysqlAuction struct {
	ID             string `gorm:"column:id;type:varchar(36);primary_key"`
	Seller         string `gorm:"column:seller;type:varchar(256);index"`
	AssetAmount    uint64 `gorm:"column:asset_amount;type:bigint unsigned;NOT NULL"`
	AssetKind      string `gorm:"column:asset_kind;type:varchar(64);NOT NULL"`
	ReservePrice   uint64 `gorm:"column:reserve_price;type:bigint unsigned;NOT NULL"`
	MinDeposit     uint64 `gorm:"column:min_deposit;type:bigint unsigned;NOT NULL"`
	CommitDeadline int64  `gorm:"column:commit_deadline;type:bigint;NOT NULL"`
	RevealDeadline int64  `gorm:"column:reveal_deadline;type:bigint;NOT NULL"`
	Status         uint64 `gorm:"column:status;type:int unsigned;index;NOT NULL"`
	Winner         string `gorm:"column:winner;type:varchar(256);default:''"`
	ClearingPrice  uint64 `gorm:"column:clearing_price;type:bigint unsigned;default:0"`
	ForfeitPool    uint64 `gorm:"column:forfeit_pool;type:bigint unsigned;default:0"`
	SellerClaimed  bool   `gorm:"column:seller_claimed;default:false"`
	CreatedAt      int64  `gorm:"column:created_at;type:bigint;NOT NULL"`
	UpdatedAt      int64  `gorm:"column:updated_at;type:bigint;NOT NULL"`
}

func (m *mysqlAuction) TableName() string {
	return "auctions"
}

func fromAuction(src *types.Auction) *mysqlAuction {
	m := &mysqlAuction{
		ID:             src.ID.String(),
		Seller:         src.Seller.String(),
		AssetAmount:    src.AssetAmount,
		AssetKind:      src.AssetKind,
		ReservePrice:   src.ReservePrice,
		MinDeposit:     src.MinDeposit,
		CommitDeadline: src.CommitDeadline,
		RevealDeadline: src.RevealDeadline,
		Status:         uint64(src.Status),
		ClearingPrice:  src.ClearingPrice,
		ForfeitPool:    src.ForfeitPool,
		SellerClaimed:  src.SellerClaimed,
		CreatedAt:      src.CreatedAt,
		UpdatedAt:      src.UpdatedAt,
	}
	if src.Winner != address.Undef {
		m.Winner = src.Winner.String()
	}
	return m
}

func toAuction(src *mysqlAuction) (*types.Auction, error) {
	id, err := uuid.Parse(src.ID)
	if err != nil {
		return nil, err
	}
	seller, err := address.NewFromString(src.Seller)
	if err != nil {
		return nil, err
	}
	winner := address.Undef
	if src.Winner != "" {
		winner, err = address.NewFromString(src.Winner)
		if err != nil {
			return nil, err
		}
	}
	return &types.Auction{
		ID:             id,
		Seller:         seller,
		AssetAmount:    src.AssetAmount,
		AssetKind:      src.AssetKind,
		ReservePrice:   src.ReservePrice,
		MinDeposit:     src.MinDeposit,
		CommitDeadline: src.CommitDeadline,
		RevealDeadline: src.RevealDeadline,
		Status:         types.AuctionStatus(src.Status),
		Winner:         winner,
		ClearingPrice:  src.ClearingPrice,
		ForfeitPool:    src.ForfeitPool,
		SellerClaimed:  src.SellerClaimed,
		CreatedAt:      src.CreatedAt,
		UpdatedAt:      src.UpdatedAt,
	}, nil
}

type auctionRepo struct {
	*gorm.DB
}

var _ repo.AuctionRepo = (*auctionRepo)(nil)

func NewAuctionRepo(db *gorm.DB) repo.AuctionRepo {
	return &auctionRepo{db}
}

func (r *auctionRepo) SaveAuction(ctx context.Context, a *types.Auction) error {
	a.UpdatedAt = time.Now().Unix()
	return r.WithContext(ctx).Save(fromAuction(a)).Error
}

func (r *auctionRepo) GetAuction(ctx context.Context, id uuid.UUID) (*types.Auction, error) {
	var m mysqlAuction
	if err := r.WithContext(ctx).Take(&m, "id = ?", id.String()).Error; err != nil {
		return nil, err
	}
	return toAuction(&m)
}

func (r *auctionRepo) ListAuction(ctx context.Context) ([]*types.Auction, error) {
	var ms []*mysqlAuction
	if err := r.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, err
	}
	auctions := make([]*types.Auction, 0, len(ms))
	for _, m := range ms {
		a, err := toAuction(m)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, nil
}

func (r *auctionRepo) CompleteAuction(ctx context.Context, a *types.Auction, expect types.AuctionStatus) error {
	a.UpdatedAt = time.Now().Unix()
	m := fromAuction(a)
	ret := r.WithContext(ctx).Model(&mysqlAuction{}).
		Where("id = ? AND status = ?", m.ID, uint64(expect)).
		Updates(map[string]interface{}{
			"status":         m.Status,
			"winner":         m.Winner,
			"clearing_price": m.ClearingPrice,
			"forfeit_pool":   m.ForfeitPool,
			"updated_at":     m.UpdatedAt,
		})
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return r.casMiss(ctx, m.ID)
	}
	return nil
}

func (r *auctionRepo) MarkProceedsClaimed(ctx context.Context, id uuid.UUID) error {
	ret := r.WithContext(ctx).Model(&mysqlAuction{}).
		Where("id = ? AND seller_claimed = ?", id.String(), false).
		Updates(map[string]interface{}{
			"seller_claimed": true,
			"updated_at":     time.Now().Unix(),
		})
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return r.casMiss(ctx, id.String())
	}
	return nil
}

// casMiss distinguishes a lost race from a missing record.
func (r *auctionRepo) casMiss(ctx context.Context, id string) error {
	var count int64
	if err := r.WithContext(ctx).Model(&mysqlAuction{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return repo.ErrNotFound
	}
	return repo.ErrStale
}

package badger

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"

	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

type auctionRepo struct {
	ds datastore.Batching
	mu *sync.Mutex
}

var _ repo.AuctionRepo = (*auctionRepo)(nil)

func NewAuctionRepo(ds datastore.Batching, mu *sync.Mutex) repo.AuctionRepo {
	return &auctionRepo{ds: ds, mu: mu}
}

func (r *auctionRepo) SaveAuction(ctx context.Context, a *types.Auction) error {
	a.UpdatedAt = time.Now().Unix()
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return r.ds.Put(ctx, AuctionKey(a.ID), data)
}

func (r *auctionRepo) GetAuction(ctx context.Context, id uuid.UUID) (*types.Auction, error) {
	data, err := r.ds.Get(ctx, AuctionKey(id))
	if err != nil {
		return nil, err
	}
	var a types.Auction
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auctionRepo) ListAuction(ctx context.Context) ([]*types.Auction, error) {
	res, err := r.ds.Query(ctx, query.Query{Prefix: "/" + dsKeyAuction})
	if err != nil {
		return nil, err
	}
	defer res.Close() //nolint:errcheck

	var auctions []*types.Auction
	for {
		ent, ok := res.NextSync()
		if !ok {
			break
		}
		if ent.Error != nil {
			return nil, ent.Error
		}
		var a types.Auction
		if err := json.Unmarshal(ent.Value, &a); err != nil {
			return nil, err
		}
		auctions = append(auctions, &a)
	}
	return auctions, nil
}

func (r *auctionRepo) CompleteAuction(ctx context.Context, a *types.Auction, expect types.AuctionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.GetAuction(ctx, a.ID)
	if err != nil {
		return err
	}
	if stored.Status != expect {
		return repo.ErrStale
	}
	return r.SaveAuction(ctx, a)
}

func (r *auctionRepo) MarkProceedsClaimed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.GetAuction(ctx, id)
	if err != nil {
		return err
	}
	if stored.SellerClaimed {
		return repo.ErrStale
	}
	stored.SellerClaimed = true
	return r.SaveAuction(ctx, stored)
}

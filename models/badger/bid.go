package badger

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"

	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/types"
)

type bidRepo struct {
	ds datastore.Batching
	mu *sync.Mutex
}

var _ repo.BidRepo = (*bidRepo)(nil)

func NewBidRepo(ds datastore.Batching, mu *sync.Mutex) repo.BidRepo {
	return &bidRepo{ds: ds, mu: mu}
}

func (r *bidRepo) CreateBid(ctx context.Context, b *types.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := BidKey(b.AuctionID, b.Bidder)
	has, err := r.ds.Has(ctx, k)
	if err != nil {
		return err
	}
	if has {
		return repo.ErrExists
	}
	return r.put(ctx, b)
}

func (r *bidRepo) GetBid(ctx context.Context, auctionID uuid.UUID, bidder address.Address) (*types.Bid, error) {
	data, err := r.ds.Get(ctx, BidKey(auctionID, bidder))
	if err != nil {
		return nil, err
	}
	var b types.Bid
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bidRepo) ListBids(ctx context.Context, auctionID uuid.UUID) ([]*types.Bid, error) {
	prefix := datastore.KeyWithNamespaces([]string{dsKeyBid, auctionID.String()})
	res, err := r.ds.Query(ctx, query.Query{Prefix: prefix.String()})
	if err != nil {
		return nil, err
	}
	defer res.Close() //nolint:errcheck

	var bids []*types.Bid
	for {
		ent, ok := res.NextSync()
		if !ok {
			break
		}
		if ent.Error != nil {
			return nil, ent.Error
		}
		var b types.Bid
		if err := json.Unmarshal(ent.Value, &b); err != nil {
			return nil, err
		}
		bids = append(bids, &b)
	}
	return bids, nil
}

func (r *bidRepo) SetRevealed(ctx context.Context, auctionID uuid.UUID, bidder address.Address, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.GetBid(ctx, auctionID, bidder)
	if err != nil {
		return err
	}
	if b.Revealed() {
		return repo.ErrStale
	}
	b.RevealedAmount = &amount
	return r.put(ctx, b)
}

func (r *bidRepo) MarkClaimed(ctx context.Context, auctionID uuid.UUID, bidder address.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.GetBid(ctx, auctionID, bidder)
	if err != nil {
		return err
	}
	if b.Claimed {
		return repo.ErrStale
	}
	b.Claimed = true
	return r.put(ctx, b)
}

func (r *bidRepo) put(ctx context.Context, b *types.Bid) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return r.ds.Put(ctx, BidKey(b.AuctionID, b.Bidder), data)
}

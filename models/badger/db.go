package badger

import (
	"sync"

	"github.com/ipfs/go-datastore"
	badger "github.com/ipfs/go-ds-badger2"

	"github.com/ipfs-force-community/vbdesk/models/repo"
)

type BadgerRepo struct {
	auctionRepo repo.AuctionRepo
	bidRepo     repo.BidRepo

	ds datastore.Batching
}

func NewBadgerRepo(ds datastore.Batching) repo.Repo {
	// Badger has no conditional writes, so the compare-and-set operations
	// serialize get-check-put sections behind one lock. The datastore is
	// owned by a single process, cross-process races cannot happen here.
	mu := &sync.Mutex{}
	return &BadgerRepo{
		auctionRepo: NewAuctionRepo(ds, mu),
		bidRepo:     NewBidRepo(ds, mu),
		ds:          ds,
	}
}

func OpenBadgerRepo(path string) (repo.Repo, error) {
	opts := &badger.DefaultOptions
	db, err := badger.NewDatastore(path, opts)
	if err != nil {
		return nil, err
	}
	return NewBadgerRepo(db), nil
}

func (r *BadgerRepo) AuctionRepo() repo.AuctionRepo {
	return r.auctionRepo
}

func (r *BadgerRepo) BidRepo() repo.BidRepo {
	return r.bidRepo
}

func (r *BadgerRepo) Migrate() error {
	// Records are stored as self-describing JSON, nothing to migrate yet.
	return nil
}

func (r *BadgerRepo) Close() error {
	return r.ds.Close()
}

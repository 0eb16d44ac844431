package badger

import (
	badger "github.com/ipfs/go-ds-badger2"

	"github.com/ipfs-force-community/vbdesk/models/repo"
)

// NewMemRepo returns a badger repo backed by an in-memory datastore, used by
// tests here and in the auctioneer package.
func NewMemRepo() (repo.Repo, error) {
	opts := badger.DefaultOptions
	opts.InMemory = true
	db, err := badger.NewDatastore("", &opts)
	if err != nil {
		return nil, err
	}
	return NewBadgerRepo(db), nil
}

package badger

import (
	"github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	"github.com/ipfs/go-datastore"
)

const (
	dsKeyAuction = "auctions"
	dsKeyBid     = "bids"
)

// AuctionKey and BidKey are the deterministic record addresses. Any caller
// can recompute them from the auction id and bidder identity alone.

func AuctionKey(id uuid.UUID) datastore.Key {
	return datastore.KeyWithNamespaces([]string{dsKeyAuction, id.String()})
}

func BidKey(auctionID uuid.UUID, bidder address.Address) datastore.Key {
	return datastore.KeyWithNamespaces([]string{dsKeyBid, auctionID.String(), bidder.String()})
}

package metrics

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	AuctionCreatedCount   = stats.Int64("auction/created", "number of auctions created", stats.UnitDimensionless)
	AuctionSettledCount   = stats.Int64("auction/settled", "number of auctions settled", stats.UnitDimensionless)
	AuctionCancelledCount = stats.Int64("auction/cancelled", "number of auctions cancelled", stats.UnitDimensionless)

	BidSubmittedCount = stats.Int64("bid/submitted", "number of sealed bids submitted", stats.UnitDimensionless)
	BidRevealedCount  = stats.Int64("bid/revealed", "number of bids revealed", stats.UnitDimensionless)

	DepositClaimedCount = stats.Int64("escrow/deposit_claimed", "number of deposit claims processed", stats.UnitDimensionless)
)

var (
	AuctionCreatedCountView = &view.View{
		Measure:     AuctionCreatedCount,
		Aggregation: view.Count(),
	}
	AuctionSettledCountView = &view.View{
		Measure:     AuctionSettledCount,
		Aggregation: view.Count(),
	}
	AuctionCancelledCountView = &view.View{
		Measure:     AuctionCancelledCount,
		Aggregation: view.Count(),
	}
	BidSubmittedCountView = &view.View{
		Measure:     BidSubmittedCount,
		Aggregation: view.Count(),
	}
	BidRevealedCountView = &view.View{
		Measure:     BidRevealedCount,
		Aggregation: view.Count(),
	}
	DepositClaimedCountView = &view.View{
		Measure:     DepositClaimedCount,
		Aggregation: view.Count(),
	}
)

var views = []*view.View{
	AuctionCreatedCountView,
	AuctionSettledCountView,
	AuctionCancelledCountView,
	BidSubmittedCountView,
	BidRevealedCountView,
	DepositClaimedCountView,
}

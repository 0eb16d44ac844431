package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ipfs-force-community/vbdesk/auctioneer"
	"github.com/ipfs-force-community/vbdesk/types"
)

var AuctionCmds = &cli.Command{
	Name:  "auction",
	Usage: "Manage auctions",
	Subcommands: []*cli.Command{
		auctionCreateCmd,
		auctionListCmd,
		auctionGetCmd,
		auctionSettleCmd,
		auctionCancelCmd,
		auctionClaimProceedsCmd,
	},
}

var auctionCreateCmd = &cli.Command{
	Name:  "create",
	Usage: "Open a new sealed-bid auction",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "seller",
			Usage:    "seller address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "asset-amount",
			Usage:    "amount of the asset under auction",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "asset-kind",
			Usage: "label of the asset under auction",
		},
		&cli.Uint64Flag{
			Name:     "reserve",
			Usage:    "minimum acceptable price",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "min-deposit",
			Usage: "minimum bid deposit",
		},
		&cli.DurationFlag{
			Name:  "commit-window",
			Usage: "how long bidders may commit",
			Value: 24 * time.Hour,
		},
		&cli.DurationFlag{
			Name:  "reveal-window",
			Usage: "how long bidders may reveal after commits close",
			Value: 24 * time.Hour,
		},
	},
	Action: func(cctx *cli.Context) error {
		api, closer, err := NewVBDeskAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		seller, err := parseAddress(cctx, "seller")
		if err != nil {
			return err
		}

		commitEnd := time.Now().Add(cctx.Duration("commit-window"))
		revealEnd := commitEnd.Add(cctx.Duration("reveal-window"))
		auction, err := api.CreateAuction(cctx.Context, auctioneer.CreateAuctionParams{
			Seller:         seller,
			AssetAmount:    cctx.Uint64("asset-amount"),
			AssetKind:      cctx.String("asset-kind"),
			ReservePrice:   cctx.Uint64("reserve"),
			MinDeposit:     cctx.Uint64("min-deposit"),
			CommitDeadline: commitEnd.Unix(),
			RevealDeadline: revealEnd.Unix(),
		})
		if err != nil {
			return err
		}

		fmt.Println(auction.ID)
		return nil
	},
}

var auctionListCmd = &cli.Command{
	Name:  "list",
	Usage: "List all auctions",
	Action: func(cctx *cli.Context) error {
		api, closer, err := NewVBDeskAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		auctions, err := api.ListAuctions(cctx.Context)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tSeller\tStatus\tReserve\tCommitEnd\tRevealEnd")
		for _, a := range auctions {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", a.ID, a.Seller, a.Status,
				a.ReservePrice, time.Unix(a.CommitDeadline, 0).Format(time.RFC3339),
				time.Unix(a.RevealDeadline, 0).Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var auctionGetCmd = &cli.Command{
	Name:      "get",
	Usage:     "Show one auction",
	ArgsUsage: "<auction id>",
	Action: func(cctx *cli.Context) error {
		api, closer, err := NewVBDeskAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		id, err := parseAuctionID(cctx, 0)
		if err != nil {
			return err
		}

		a, err := api.GetAuction(cctx.Context, id)
		if err != nil {
			return err
		}

		fmt.Printf("id:\t%s\n", a.ID)
		fmt.Printf("seller:\t%s\n", a.Seller)
		fmt.Printf("status:\t%s\n", a.Status)
		fmt.Printf("asset:\t%d %s\n", a.AssetAmount, a.AssetKind)
		fmt.Printf("reserve:\t%d\n", a.ReservePrice)
		fmt.Printf("min deposit:\t%d\n", a.MinDeposit)
		fmt.Printf("commit deadline:\t%s\n", time.Unix(a.CommitDeadline, 0).Format(time.RFC3339))
		fmt.Printf("reveal deadline:\t%s\n", time.Unix(a.RevealDeadline, 0).Format(time.RFC3339))
		if a.Status == types.AuctionSettled {
			fmt.Printf("winner:\t%s\n", a.Winner)
			fmt.Printf("clearing price:\t%d\n", a.ClearingPrice)
			fmt.Printf("forfeit pool:\t%d\n", a.ForfeitPool)
		}
		return nil
	},
}

var auctionSettleCmd = &cli.Command{
	Name:      "settle",
	Usage:     "Settle an auction whose reveal window elapsed",
	ArgsUsage: "<auction id>",
	Action: func(cctx *cli.Context) error {
		api, closer, err := NewVBDeskAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		id, err := parseAuctionID(cctx, 0)
		if err != nil {
			return err
		}

		a, err := api.SettleAuction(cctx.Context, id)
		if err != nil {
			return err
		}
		if a.Status == types.AuctionCancelled {
			fmt.Println("auction cancelled: reserve not met")
			return nil
		}
		fmt.Printf("winner %s at price %d\n", a.Winner, a.ClearingPrice)
		return nil
	},
}

var auctionCancelCmd = &cli.Command{
	Name:      "cancel",
	Usage:     "Cancel an auction that received no bids",
	ArgsUsage: "<auction id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "seller",
			Usage:    "seller address",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		api, closer, err := NewVBDeskAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		id, err := parseAuctionID(cctx, 0)
		if err != nil {
			return err
		}
		seller, err := parseAddress(cctx, "seller")
		if err != nil {
			return err
		}

		return api.CancelAuction(cctx.Context, id, seller)
	},
}

var auctionClaimProceedsCmd = &cli.Command{
	Name:      "claim-proceeds",
	Usage:     "Collect the seller side of a closed auction",
	ArgsUsage: "<auction id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "seller",
			Usage:    "seller address",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		api, closer, err := NewVBDeskAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		id, err := parseAuctionID(cctx, 0)
		if err != nil {
			return err
		}
		seller, err := parseAddress(cctx, "seller")
		if err != nil {
			return err
		}

		payout, err := api.ClaimProceeds(cctx.Context, id, seller)
		if err != nil {
			return err
		}
		fmt.Printf("released %d funds, %d %s asset\n", payout.Amount, payout.AssetAmount, payout.AssetKind)
		return nil
	},
}

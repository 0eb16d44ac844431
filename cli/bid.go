package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/ipfs-force-community/vbdesk/commitment"
)

var BidCmds = &cli.Command{
	Name:  "bid",
	Usage: "Commit, reveal and claim sealed bids",
	Subcommands: []*cli.Command{
		bidCommitCmd,
		bidRevealCmd,
		bidListCmd,
		bidClaimCmd,
	},
}

var bidCommitCmd = &cli.Command{
	Name:      "commit",
	Usage:     "Seal an amount into a commitment and escrow the deposit",
	ArgsUsage: "<auction id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "bidder",
			Usage:    "bidder address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "bid amount to seal",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "deposit",
			Usage:    "deposit to escrow, must cover the amount",
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
		bidder, err := parseAddress(cctx, "bidder")
		if err != nil {
			return err
		}

		secret, err := commitment.NewSecret(rand.Reader)
		if err != nil {
			return err
		}

		amount := cctx.Uint64("amount")
		c := commitment.Commit(amount, secret, bidder)
		if _, err := api.SubmitBid(cctx.Context, id, bidder, c, cctx.Uint64("deposit")); err != nil {
			return err
		}

		fmt.Printf("commitment: %s\n", c)
		fmt.Printf("secret: %s\n", hex.EncodeToString(secret[:]))
		fmt.Println("keep the secret, it is required to reveal and cannot be recovered")
		return nil
	},
}

var bidRevealCmd = &cli.Command{
	Name:      "reveal",
	Usage:     "Open a commitment during the reveal window",
	ArgsUsage: "<auction id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "bidder",
			Usage:    "bidder address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the sealed amount",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "secret",
			Usage:    "hex secret printed at commit time",
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
		bidder, err := parseAddress(cctx, "bidder")
		if err != nil {
			return err
		}

		raw, err := hex.DecodeString(cctx.String("secret"))
		if err != nil {
			return fmt.Errorf("decode secret: %w", err)
		}
		secret, err := commitment.ParseSecret(raw)
		if err != nil {
			return err
		}

		bid, err := api.RevealBid(cctx.Context, id, bidder, cctx.Uint64("amount"), secret)
		if err != nil {
			return err
		}
		fmt.Printf("revealed %d\n", *bid.RevealedAmount)
		return nil
	},
}

var bidListCmd = &cli.Command{
	Name:      "list",
	Usage:     "List the bids of an auction",
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

		bids, err := api.ListBids(cctx.Context, id)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "Bidder\tDeposit\tRevealed\tClaimed")
		for _, b := range bids {
			revealed := "-"
			if b.Revealed() {
				revealed = fmt.Sprintf("%d", *b.RevealedAmount)
			}
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%v\n", b.Bidder, b.Deposit, revealed, b.Claimed)
		}
		return w.Flush()
	},
}

var bidClaimCmd = &cli.Command{
	Name:      "claim",
	Usage:     "Claim the deposit refund once the auction closed",
	ArgsUsage: "<auction id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "bidder",
			Usage:    "bidder address",
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
		bidder, err := parseAddress(cctx, "bidder")
		if err != nil {
			return err
		}

		payout, err := api.ClaimDeposit(cctx.Context, id, bidder)
		if err != nil {
			return err
		}
		fmt.Printf("released %d funds, %d %s asset\n", payout.Amount, payout.AssetAmount, payout.AssetKind)
		return nil
	},
}

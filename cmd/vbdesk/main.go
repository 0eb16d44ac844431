package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	cli2 "github.com/ipfs-force-community/vbdesk/cli"
	"github.com/ipfs-force-community/vbdesk/version"
)

var mainLog = logging.Logger("main")

var (
	RepoFlag = &cli.StringFlag{
		Name:    "repo",
		EnvVars: []string{"VBDESK_PATH"},
		Value:   cli2.DefVBDeskRepoPath,
	}

	APIListenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "specify endpoint for listen",
		Value: "/ip4/127.0.0.1/tcp/41235",
	}

	MysqlDsnFlag = &cli.StringFlag{
		Name:  "mysql-dsn",
		Usage: "mysql connection string, badger is used when unset",
	}
)

func main() {
	app := &cli.App{
		Name:                 "vbdesk",
		Usage:                "sealed-bid auction desk",
		Version:              version.UserVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			RepoFlag,
		},
		Commands: []*cli.Command{
			runCmd,
			cli2.AuctionCmds,
			cli2.BidCmds,
		},
	}

	if err := app.Run(os.Args); err != nil {
		mainLog.Fatal(err)
	}
}

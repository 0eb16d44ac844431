package cli

import (
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-jsonrpc"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ipfs-force-community/vbdesk/api"
	"github.com/ipfs-force-community/vbdesk/config"
	"github.com/ipfs-force-community/vbdesk/rpc"
)

const DefVBDeskRepoPath = "~/.vbdesk"

// NewVBDeskAPI dials the desk daemon configured under the repo flag.
func NewVBDeskAPI(cctx *cli.Context) (api.VBDesk, jsonrpc.ClientCloser, error) {
	repoPath := cctx.String("repo")

	cfg := config.DefaultDeskConfig()
	cfg.HomeDir = repoPath
	cfgPath, err := cfg.ConfigPath()
	if err != nil {
		return nil, nil, err
	}
	if err := config.LoadConfig(cfgPath, cfg); err != nil {
		return nil, nil, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	return rpc.NewVBDeskRPC(cctx.Context, cfg.API.ListenAddress, nil)
}

func parseAuctionID(cctx *cli.Context, index int) (uuid.UUID, error) {
	if cctx.Args().Len() <= index {
		return uuid.UUID{}, fmt.Errorf("auction id argument missing")
	}
	return uuid.Parse(cctx.Args().Get(index))
}

func parseAddress(cctx *cli.Context, flag string) (address.Address, error) {
	if !cctx.IsSet(flag) {
		return address.Undef, fmt.Errorf("flag %s is required", flag)
	}
	return address.NewFromString(cctx.String(flag))
}

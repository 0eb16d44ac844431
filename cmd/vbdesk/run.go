package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ipfs-force-community/vbdesk/auctioneer"
	"github.com/ipfs-force-community/vbdesk/config"
	"github.com/ipfs-force-community/vbdesk/metrics"
	"github.com/ipfs-force-community/vbdesk/models/badger"
	"github.com/ipfs-force-community/vbdesk/models/mysql"
	"github.com/ipfs-force-community/vbdesk/models/repo"
	"github.com/ipfs-force-community/vbdesk/rpc"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "Run the auction desk daemon",
	Flags: []cli.Flag{
		APIListenFlag,
		MysqlDsnFlag,
	},
	Action: runDaemon,
}

func flagData(cctx *cli.Context, cfg *config.DeskConfig) {
	if cctx.IsSet(APIListenFlag.Name) {
		cfg.API.ListenAddress = cctx.String(APIListenFlag.Name)
	}
	if cctx.IsSet(MysqlDsnFlag.Name) {
		cfg.Mysql.ConnectionString = cctx.String(MysqlDsnFlag.Name)
	}
}

func prepareConfig(cctx *cli.Context) (*config.DeskConfig, error) {
	cfg := config.DefaultDeskConfig()
	cfg.HomeDir = cctx.String(RepoFlag.Name)

	cfgPath, err := cfg.ConfigPath()
	if err != nil {
		return nil, err
	}
	if err := config.LoadConfig(cfgPath, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		flagData(cctx, cfg)
		if err := config.SaveConfig(cfg); err != nil {
			return nil, fmt.Errorf("write initial config: %w", err)
		}
		return cfg, nil
	}

	flagData(cctx, cfg)
	return cfg, nil
}

func openRepo(cfg *config.DeskConfig) (repo.Repo, error) {
	if len(cfg.Mysql.ConnectionString) > 0 {
		return mysql.OpenMysql(&cfg.Mysql)
	}
	path, err := cfg.HomeJoin("badger")
	if err != nil {
		return nil, err
	}
	return badger.OpenBadgerRepo(path)
}

func runDaemon(cctx *cli.Context) error {
	ctx := cctx.Context

	cfg, err := prepareConfig(cctx)
	if err != nil {
		return err
	}

	if err := metrics.SetupMetrics(ctx, &cfg.Metrics); err != nil {
		return err
	}

	r, err := openRepo(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	desk := auctioneer.NewAuctioneer(r)

	shutdownCh := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		<-sigCh
		close(shutdownCh)
	}()

	mainLog.Infof("vbdesk listening on %s", cfg.API.ListenAddress)
	return rpc.ServeRPC(ctx, &cfg.API, desk, shutdownCh)
}

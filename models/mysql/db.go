package mysql

import (
	"time"

	"golang.org/x/xerrors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ipfs-force-community/vbdesk/config"
	"github.com/ipfs-force-community/vbdesk/models/repo"
)

type MysqlRepo struct {
	*gorm.DB
}

var _ repo.Repo = (*MysqlRepo)(nil)

func OpenMysql(cfg *config.Mysql) (repo.Repo, error) {
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString), &gorm.Config{})
	if err != nil {
		return nil, xerrors.Errorf("open mysql %s: %w", cfg.ConnectionString, err)
	}

	db.Set("gorm:table_options", "CHARSET=utf8mb4")
	if cfg.Debug {
		db = db.Debug()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetConnMaxLifetime(time.Minute * time.Duration(cfg.ConnMaxLifeTime))

	return &MysqlRepo{db}, nil
}

func (r MysqlRepo) AuctionRepo() repo.AuctionRepo {
	return NewAuctionRepo(r.DB)
}

func (r MysqlRepo) BidRepo() repo.BidRepo {
	return NewBidRepo(r.DB)
}

func (r MysqlRepo) Migrate() error {
	return r.DB.AutoMigrate(mysqlAuction{}, mysqlBid{})
}

func (r MysqlRepo) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

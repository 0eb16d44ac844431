package config

import (
	"path"
	"time"

	"github.com/ipfs-force-community/metrics"
	"github.com/mitchellh/go-homedir"
)

// API contains configs for the RPC endpoint
type API struct {
	// Binding address for the RPC API
	// Format: multiaddress
	ListenAddress string
	Timeout       Duration
}

type Mysql struct {
	ConnectionString string
	MaxOpenConn      int
	MaxIdleConn      int
	// ConnMaxLifeTime is in minutes
	ConnMaxLifeTime int
	Debug           bool
}

type DeskConfig struct {
	HomeDir string `toml:"-"`

	API     API
	Mysql   Mysql
	Metrics metrics.MetricsConfig
}

func DefaultDeskConfig() *DeskConfig {
	return &DeskConfig{
		HomeDir: "~/.vbdesk",
		API: API{
			ListenAddress: "/ip4/127.0.0.1/tcp/41235",
			Timeout:       Duration(30 * time.Second),
		},
		Mysql: Mysql{
			MaxOpenConn:     100,
			MaxIdleConn:     100,
			ConnMaxLifeTime: 1,
		},
	}
}

func (c *DeskConfig) HomePath() (string, error) {
	return homedir.Expand(c.HomeDir)
}

func (c *DeskConfig) HomeJoin(sep ...string) (string, error) {
	homeDir, err := homedir.Expand(c.HomeDir)
	if err != nil {
		return "", err
	}
	finalPath := homeDir
	for _, p := range sep {
		finalPath = path.Join(finalPath, p)
	}
	return finalPath, nil
}

func (c *DeskConfig) ConfigPath() (string, error) {
	return c.HomeJoin("config.toml")
}

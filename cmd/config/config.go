package config

import (
	"github.com/rigochain/rigo-dao/ctrlers/types"
	tmcfg "github.com/tendermint/tendermint/config"
	"os"
	"path/filepath"
)

const (
	DEFAULT_DIR_NAME = ".rigo-dao"
)

// Config wraps the tendermint base configuration.
// Only RootDir, DBPath, DBBackend and LogLevel of it are used.
type Config struct {
	*tmcfg.Config
	ChainID string `mapstructure:"chain_id"`

	// CacheSize is the iavl node cache size of every ledger.
	CacheSize int `mapstructure:"cache_size"`

	// MetricsEnabled registers the governance metrics to the default prometheus registry.
	MetricsEnabled bool `mapstructure:"metrics_enabled"`

	Gov *types.GovParams `mapstructure:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Config:         tmcfg.DefaultConfig(),
		ChainID:        "rigo-dao-local",
		CacheSize:      1000,
		MetricsEnabled: false,
		Gov:            types.DefaultGovParams(),
	}
}

// TestConfig returns a config whose ledgers live in memory.
func TestConfig() *Config {
	cfg := DefaultConfig()
	cfg.Config = tmcfg.TestConfig()
	cfg.DBBackend = "memdb"
	cfg.CacheSize = 100
	return cfg
}

func (cfg *Config) SetRoot(root string) *Config {
	cfg.Config.SetRoot(root)
	return cfg
}

func (cfg *Config) GenesisFile() string {
	return filepath.Join(cfg.RootDir, "config", "genesis.json")
}

func (cfg *Config) EnsureDirs() error {
	for _, dir := range []string{cfg.RootDir, filepath.Join(cfg.RootDir, "config"), cfg.DBDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}

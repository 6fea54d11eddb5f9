package config

// Package config provides a reusable loader for asset universe
// configuration files and environment variables. It is versioned so
// that applications can depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/synnergy-network/asset-universe/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for an asset universe
// node. It mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Network struct {
		ID           string `mapstructure:"id" json:"id"`
		MaxPeers     int    `mapstructure:"max_peers" json:"max_peers"`
		ListenAddr   string `mapstructure:"listen_addr" json:"listen_addr"`
		DiscoveryTag string `mapstructure:"discovery_tag" json:"discovery_tag"`
	} `mapstructure:"network" json:"network"`

	Universe struct {
		CapacityShift int    `mapstructure:"capacity_shift" json:"capacity_shift"`
		SnapshotDir   string `mapstructure:"snapshot_dir" json:"snapshot_dir"`
		Hasher        string `mapstructure:"hasher" json:"hasher"`
	} `mapstructure:"universe" json:"universe"`

	Contracts struct {
		AssetIssuanceFee uint64 `mapstructure:"asset_issuance_fee" json:"asset_issuance_fee"`
		TransferFee      uint64 `mapstructure:"transfer_fee" json:"transfer_fee"`
		TradeFeeBillion  uint64 `mapstructure:"trade_fee_billionths" json:"trade_fee_billionths"`
	} `mapstructure:"contracts" json:"contracts"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up overrides from environment variables

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the SYNN_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("SYNN_ENV", ""))
}

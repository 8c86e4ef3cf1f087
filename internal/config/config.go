// internal/config/config.go
package config

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config is the application configuration loaded from YAML with
// environment overrides.
type Config struct {
	RPCList          []string `mapstructure:"rpc_list"`
	WalletsFile      string   `mapstructure:"wallets_file"`
	TasksFile        string   `mapstructure:"tasks_file"`
	LogFile          string   `mapstructure:"log_file"`
	DebugLogging     bool     `mapstructure:"debug_logging"`
	SkipConfirmation bool     `mapstructure:"skip_confirmation"`
	WaitConfirmation bool     `mapstructure:"wait_confirmation"`
	Workers          int      `mapstructure:"workers"`
}

const (
	DefaultWalletsFile = "data/wallets.csv"
	DefaultTasksFile   = "data/tasks.yaml"
	DefaultLogFile     = "rayswap.log"
	DefaultWorkers     = 2
)

// LoadConfig reads and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"wallets_file":      DefaultWalletsFile,
		"tasks_file":        DefaultTasksFile,
		"log_file":          DefaultLogFile,
		"workers":           DefaultWorkers,
		"wait_confirmation": true,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := loadEnvironmentVariables(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURLWithCache(rpcURL, "http"); err != nil {
			return errors.New("invalid RPC URL protocol")
		}
	}
	if cfg.Workers <= 0 {
		return errors.New("invalid workers count")
	}
	if cfg.WalletsFile == "" {
		return errors.New("wallets_file is required")
	}
	if cfg.TasksFile == "" {
		return errors.New("tasks_file is required")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("RAYSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envRPCList := v.GetString("RPC_LIST")
	if envRPCList != "" {
		rpcs := strings.Split(envRPCList, ",")
		var cleanRPCs []string
		for _, rpc := range rpcs {
			clean := strings.TrimSpace(rpc)
			if clean != "" {
				cleanRPCs = append(cleanRPCs, clean)
			}
		}
		if len(cleanRPCs) > 0 {
			cfg.RPCList = cleanRPCs
		}
	}

	envWallets := v.GetString("WALLETS_FILE")
	if envWallets != "" {
		cfg.WalletsFile = envWallets
	}
	return nil
}

package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Data     DataConfig     `mapstructure:"data"`
	Game     GameConfig     `mapstructure:"game"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Mode       string `mapstructure:"mode"` // sqlite | memory
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DataConfig struct {
	// TablesDir points at a directory of JSON table overrides (herbs,
	// grotto levels, recipes, ...). Empty means built-in defaults only.
	TablesDir string `mapstructure:"tables_dir"`
}

type GameConfig struct {
	PlayerName  string `mapstructure:"player_name"`
	DefaultSlot string `mapstructure:"default_slot"`
	LogCapacity int    `mapstructure:"log_capacity"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads config from the given YAML file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("database.mode", "sqlite")
	v.SetDefault("database.sqlite_path", "./data/game.db")
	v.SetDefault("data.tables_dir", "")
	v.SetDefault("game.player_name", "无名散修")
	v.SetDefault("game.default_slot", "slot1")
	v.SetDefault("game.log_capacity", 200)
	v.SetDefault("security.rate_limit_rps", 100)
	v.SetDefault("security.rate_limit_burst", 200)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

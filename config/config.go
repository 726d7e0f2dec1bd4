package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Question QuestionConfig `mapstructure:"question"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type GameConfig struct {
	PlayersPerGame int           `mapstructure:"players_per_game"`
	RoundDuration  time.Duration `mapstructure:"round_duration"`
}

type QuestionConfig struct {
	APIURL      string        `mapstructure:"api_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":9999")
	v.SetDefault("server.rpc_address", ":9998")
	v.SetDefault("server.metrics_address", ":9100")
	v.SetDefault("game.players_per_game", 2)
	v.SetDefault("game.round_duration", 10*time.Second)
	v.SetDefault("question.api_url", "http://opentdb.com/api.php?amount=1&type=multiple&difficulty=easy")
	v.SetDefault("question.http_timeout", 10*time.Second)
}

// LoadConfig reads config.yaml from the given path. A missing config file is
// not an error; every setting has a default and can be overridden via
// environment variables.
func LoadConfig(path string) (config *Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Game.PlayersPerGame < 2 {
		return errors.New("game.players_per_game must be at least 2")
	}
	if c.Game.RoundDuration <= 0 {
		return errors.New("game.round_duration must be positive")
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mysql"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/portal"
	"github.com/spf13/viper"
)

type Config struct {
	API      API           `mapstructure:"api"`
	Database mysql.Config  `mapstructure:"database"`
	RabbitMQ mq.Config     `mapstructure:"rabbitmq"`
	Portal   portal.Config `mapstructure:"portal"`
	Worker   Worker        `mapstructure:"worker"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Worker struct {
	Prefetch int `mapstructure:"prefetch"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

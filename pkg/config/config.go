package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Frontend FrontendConfig `mapstructure:"frontend"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

// GatewayConfig holds the upstream session gateway credentials. Both URL
// and Token must be set for the gateway-backed endpoints to be served;
// with either missing the server still starts but answers 503.
type GatewayConfig struct {
	URL           string        `mapstructure:"url"`
	Token         string        `mapstructure:"token"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	// InsecureSkipVerify disables TLS certificate verification on outbound
	// gateway calls. Defaults to true because the gateway typically serves
	// a self-signed certificate inside the deployment. Do not carry this
	// default into environments where the gateway has a real certificate.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

func (g GatewayConfig) Enabled() bool {
	return g.URL != "" && g.Token != ""
}

type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	EnableLatency  bool `mapstructure:"enable_latency"`
	EnableUpstream bool `mapstructure:"enable_upstream"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	GamesTTL time.Duration `mapstructure:"games_ttl"`
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type FrontendConfig struct {
	Dir   string `mapstructure:"dir"`
	Index string `mapstructure:"index"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// matches the upstream gateway's self-signed deployment default
	v.SetDefault("gateway.insecure_skip_verify", true)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		// no file on disk, environment variables only
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Gateway.Timeout == 0 {
		globalConfig.Gateway.Timeout = 10 * time.Second
	}
	if globalConfig.Gateway.RetryAttempts == 0 {
		globalConfig.Gateway.RetryAttempts = 3
	}
	if globalConfig.Redis.GamesTTL == 0 {
		globalConfig.Redis.GamesTTL = 30 * time.Second
	}
	if globalConfig.Frontend.Dir == "" {
		globalConfig.Frontend.Dir = "./static"
	}
	if globalConfig.Frontend.Index == "" {
		globalConfig.Frontend.Index = "index.html"
	}
}

func GetConfig() *Config {
	return &globalConfig
}

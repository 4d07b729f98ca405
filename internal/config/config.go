package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultIPVersion   = "v4"
	DefaultPort        = 51511
	DefaultTransport   = "tcp"
	DefaultRecentGames = 50
)

// Config 服务端和客户端共用的配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig 服务端监听配置
type ServerConfig struct {
	IPVersion  string `yaml:"ip_version"`  // v4 | v6
	Port       int    `yaml:"port"`
	BoardFile  string `yaml:"board_file"`
	AcceptLoop bool   `yaml:"accept_loop"` // 一局结束后继续等待下一个客户端
	Transport  string `yaml:"transport"`   // tcp | websocket
}

// RedisConfig Redis 配置，Addr 为空时不记录统计
type RedisConfig struct {
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	RecentGames int    `yaml:"recent_games"`
}

// ClientConfig 客户端配置
type ClientConfig struct {
	Sound bool `yaml:"sound"`
}

// Load 加载配置文件，再应用环境变量覆盖
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// 先填默认值，yaml 只覆盖文件里出现的字段
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Server.IPVersion == "" {
		cfg.Server.IPVersion = DefaultIPVersion
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = DefaultTransport
	}
	if cfg.Redis.RecentGames <= 0 {
		cfg.Redis.RecentGames = DefaultRecentGames
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			IPVersion:  DefaultIPVersion,
			Port:       DefaultPort,
			AcceptLoop: true,
			Transport:  DefaultTransport,
		},
		Redis: RedisConfig{
			RecentGames: DefaultRecentGames,
		},
		Client: ClientConfig{
			Sound: true,
		},
	}
}

// ApplyEnv 用环境变量覆盖配置
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("SERVER_IP_VERSION"); v != "" {
		c.Server.IPVersion = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("SERVER_BOARD_FILE"); v != "" {
		c.Server.BoardFile = v
	}
	if v := os.Getenv("SERVER_TRANSPORT"); v != "" {
		c.Server.Transport = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("CLIENT_SOUND"); v != "" {
		sound, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLIENT_SOUND: %w", err)
		}
		c.Client.Sound = sound
	}
	return nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	switch c.Server.IPVersion {
	case "v4", "v6":
	default:
		return fmt.Errorf("invalid ip_version %q (want v4 or v6)", c.Server.IPVersion)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	switch c.Server.Transport {
	case "tcp", "websocket":
	default:
		return fmt.Errorf("invalid transport %q (want tcp or websocket)", c.Server.Transport)
	}
	if c.Redis.RecentGames < 0 {
		return fmt.Errorf("invalid redis.recent_games %d", c.Redis.RecentGames)
	}
	return nil
}

// StatsEnabled 是否配置了 Redis
func (c *Config) StatsEnabled() bool {
	return c.Redis.Addr != ""
}

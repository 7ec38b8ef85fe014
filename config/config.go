package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Port     string `yaml:"port"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Chat struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
	} `yaml:"chat"`
	Search struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"search"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// DSN generates the PostgreSQL DSN from database config
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

// LoadConfig reads and parses the YAML configuration file. Every required
// field is checked here so that missing settings fail at startup instead of
// on the first chat turn.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	required := []struct {
		value string
		name  string
	}{
		{c.Database.Host, "database.host"},
		{c.Database.User, "database.user"},
		{c.Database.Password, "database.password"},
		{c.Database.DBName, "database.dbname"},
		{c.Database.Port, "database.port"},
		{c.Database.SSLMode, "database.sslmode"},
		{c.Chat.BaseURL, "chat.base_url"},
		{c.Chat.APIKey, "chat.api_key"},
		{c.Chat.Model, "chat.model"},
		{c.Search.Endpoint, "search.endpoint"},
		{c.Search.APIKey, "search.api_key"},
		{c.Log.File, "log.file"},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("configuration error: %s is required", f.name)
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("configuration error: server.port must be between 1 and 65535")
	}
	return nil
}

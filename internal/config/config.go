package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	UILine = "line"
	UITUI  = "tui"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:""`
	UI       string `yaml:"ui" env:"UI" env-default:"line"`
	Server   Server `yaml:"server"`
	Page     Page   `yaml:"page"`
	Turn     Turn   `yaml:"turn"`
}

type Server struct {
	BaseURL        string        `yaml:"base-url" env:"SERVER_BASE_URL" env-default:"http://localhost:8080/cgi-bin/"`
	BoardPath      string        `yaml:"board-path" env:"SERVER_BOARD_PATH" env-default:"checkers.cgi"`
	MovePath       string        `yaml:"move-path" env:"SERVER_MOVE_PATH" env-default:"update_board.cgi"`
	RequestTimeout time.Duration `yaml:"request-timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"10s"`
}

type Page struct {
	ShellPath string `yaml:"shell-path" env:"PAGE_SHELL_PATH" env-default:""`
}

// Turn - when Attribute is set, the turn indicator follows that attribute of the returned board.
type Turn struct {
	Attribute string `yaml:"attribute" env:"TURN_ATTRIBUTE" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the config file, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if _, err := url.Parse(that.Server.BaseURL); err != nil || that.Server.BaseURL == "" {
		return fmt.Errorf("invalid server base url %q", that.Server.BaseURL)
	}

	if that.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", that.Server.RequestTimeout)
	}

	switch strings.ToLower(that.UI) {
	case UILine, UITUI:
	default:
		return fmt.Errorf("unknown ui %q", that.UI)
	}

	return nil
}

// BoardURL - absolute url of the board fragment endpoint.
func (that *Server) BoardURL() (string, error) {
	return that.resolve(that.BoardPath)
}

// MoveURL - absolute url of the move endpoint.
func (that *Server) MoveURL() (string, error) {
	return that.resolve(that.MovePath)
}

func (that *Server) resolve(path string) (string, error) {
	base, err := url.Parse(that.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base url: %w", err)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse path %q: %w", path, err)
	}

	return base.ResolveReference(ref).String(), nil
}

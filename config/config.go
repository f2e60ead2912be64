package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/barryzzz/speller/common/charset"
	C "github.com/barryzzz/speller/constant"
	"github.com/barryzzz/speller/log"

	"gopkg.in/yaml.v2"
)

// General config
type General struct {
	LogLevel           log.LogLevel `json:"log-level"`
	ExternalController string       `json:"-"`
	Secret             string       `json:"-"`
}

// Input config
type Input struct {
	Dictionary    string   `json:"dictionary"`
	Filter        string   `json:"filter"`
	Texts         []string `json:"texts"`
	Encoding      string   `json:"encoding"`
	CommentPrefix string   `json:"comment-prefix"`
	Concurrency   int      `json:"concurrency"`
}

// Config is speller config manager
type Config struct {
	General *General
	Input   *Input
}

type RawConfig struct {
	Dictionary         string       `yaml:"dictionary"`
	Filter             string       `yaml:"filter"`
	Texts              []string     `yaml:"texts"`
	Encoding           string       `yaml:"encoding"`
	CommentPrefix      string       `yaml:"comment-prefix"`
	Concurrency        int          `yaml:"concurrency"`
	LogLevel           log.LogLevel `yaml:"log-level"`
	ExternalController string       `yaml:"external-controller"`
	Secret             string       `yaml:"secret"`
}

// DefaultRawConfig returns the raw config every file is unmarshalled over.
func DefaultRawConfig() *RawConfig {
	return &RawConfig{
		Texts:         []string{},
		Encoding:      C.DefaultEncoding,
		CommentPrefix: C.DefaultCommentPrefix,
		Concurrency:   C.DefaultConcurrency,
		LogLevel:      log.INFO,
	}
}

// Parse config
func Parse(buf []byte) (*Config, error) {
	rawCfg, err := UnmarshalRawConfig(buf)
	if err != nil {
		return nil, err
	}

	return ParseRawConfig(rawCfg)
}

func UnmarshalRawConfig(buf []byte) (*RawConfig, error) {
	rawCfg := DefaultRawConfig()
	if err := yaml.Unmarshal(buf, rawCfg); err != nil {
		return nil, err
	}

	return rawCfg, nil
}

// ParseFile reads and parses the config at path.
func ParseFile(path string) (*RawConfig, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return UnmarshalRawConfig(buf)
}

func ParseRawConfig(rawCfg *RawConfig) (*Config, error) {
	input, err := parseInput(rawCfg)
	if err != nil {
		return nil, err
	}

	return &Config{
		General: &General{
			LogLevel:           rawCfg.LogLevel,
			ExternalController: rawCfg.ExternalController,
			Secret:             rawCfg.Secret,
		},
		Input: input,
	}, nil
}

func parseInput(cfg *RawConfig) (*Input, error) {
	if cfg.Dictionary == "" {
		return nil, errors.New("dictionary path is required")
	}

	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}

	if _, err := charset.Lookup(cfg.Encoding); err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(cfg.Texts))
	for _, text := range cfg.Texts {
		if text != "" {
			texts = append(texts, text)
		}
	}

	return &Input{
		Dictionary:    cfg.Dictionary,
		Filter:        cfg.Filter,
		Texts:         texts,
		Encoding:      cfg.Encoding,
		CommentPrefix: cfg.CommentPrefix,
		Concurrency:   cfg.Concurrency,
	}, nil
}

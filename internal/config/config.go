// Package config loads runtime settings from defaults, an optional
// YAML file and NEWSWATCH_* environment variables, in ascending
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultKeywords is the shared-growth index query set the collector
// was built around.
var defaultKeywords = []string{
	"동반성장 지수 기업 활동",
	"동반성장위원회 실적평가 기업",
	"공정거래협약 이행평가 기업",
	"중소기업 지원 대기업 뉴스",
	"공정거래 준수 기업 사례",
}

// defaultRelevanceTerms feed the relevance filter when it is enabled.
var defaultRelevanceTerms = []string{"동반성장", "공정거래", "상생협력"}

// Settings is the validated runtime configuration.
type Settings struct {
	Keywords       []string      `mapstructure:"keywords"`
	Language       string        `mapstructure:"language"`
	Country        string        `mapstructure:"country"`
	MaxPerKeyword  int           `mapstructure:"max_per_keyword"`
	PageSize       int           `mapstructure:"page_size"`
	Dedup          bool          `mapstructure:"dedup"`
	Filter         bool          `mapstructure:"filter"`
	RelevanceTerms []string      `mapstructure:"relevance_terms"`
	PacingDelay    time.Duration `mapstructure:"pacing_delay"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	ExportDir      string        `mapstructure:"export_dir"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Load reads settings. path may be empty, in which case only defaults
// and environment variables apply; a named file that does not exist is
// an error.
func Load(path string) (Settings, error) {
	v := viper.New()

	v.SetDefault("keywords", defaultKeywords)
	v.SetDefault("language", "ko")
	v.SetDefault("country", "KR")
	v.SetDefault("max_per_keyword", 20)
	v.SetDefault("page_size", 10)
	v.SetDefault("dedup", true)
	v.SetDefault("filter", false)
	v.SetDefault("relevance_terms", defaultRelevanceTerms)
	v.SetDefault("pacing_delay", time.Second)
	v.SetDefault("fetch_timeout", 15*time.Second)
	v.SetDefault("export_dir", ".")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("NEWSWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}

	s = sanitize(s)
	if err := validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// sanitize trims and normalizes the loaded values.
func sanitize(s Settings) Settings {
	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	s.Country = strings.ToUpper(strings.TrimSpace(s.Country))
	s.ExportDir = strings.TrimSpace(s.ExportDir)
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.Keywords = cleanList(s.Keywords)
	s.RelevanceTerms = cleanList(s.RelevanceTerms)
	return s
}

// cleanList drops empty entries and trims the rest, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func validate(s Settings) error {
	if len(s.Keywords) == 0 {
		return errors.New("config: keywords list is empty")
	}
	if s.Language == "" || s.Country == "" {
		return errors.New("config: language and country must be set")
	}
	if s.MaxPerKeyword < 1 {
		return fmt.Errorf("config: max_per_keyword must be >= 1, got %d", s.MaxPerKeyword)
	}
	if s.PageSize < 1 {
		return fmt.Errorf("config: page_size must be >= 1, got %d", s.PageSize)
	}
	if s.PacingDelay < 0 {
		return fmt.Errorf("config: pacing_delay must not be negative, got %s", s.PacingDelay)
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("config: fetch_timeout must be positive, got %s", s.FetchTimeout)
	}
	return nil
}

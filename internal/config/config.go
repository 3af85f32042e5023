package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

type Config struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	UserAgent        string        `yaml:"user_agent"`
	Cookie           string        `yaml:"cookie"`
	CookieFile       string        `yaml:"cookie_file"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`
	RulesFile        string        `yaml:"rules_file"`

	Format string `yaml:"format"`
	Debug  bool   `yaml:"debug"`

	Output         string   `yaml:"output"`
	ImageWorkers   int      `yaml:"image_workers"`
	ChapterWorkers int      `yaml:"chapter_workers"`
	KeepFolders    bool     `yaml:"keep_folders"`
	SkipBroken     bool     `yaml:"skip_broken"`
	AllowExt       []string `yaml:"allow_ext"`
}

// Options carries CLI flag values. Zero values leave the file value alone.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	BaseURL          string
	Timeout          time.Duration
	UserAgent        string
	Cookie           string
	CookieFile       string
	CloudflareBypass bool
	RulesFile        string
	Format           string
	Output           string
	ImageWorkers     int
	ChapterWorkers   int
	KeepFolders      bool
	SkipBroken       bool
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://komikcast02.com",
		Timeout:        10 * time.Second,
		Format:         FormatJSON,
		Output:         ".",
		ImageWorkers:   5,
		ChapterWorkers: 2,
		AllowExt:       []string{"jpg", "jpeg", "png", "webp"},
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func LoadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return c, nil
}

// LoadMerged resolves the active profile of s, applies opts on top and
// returns the result with a short description of where it came from.
func (s Store) LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := s.ActivePath()
	if err == ErrNoProfile {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory, run `komikcast config init` to create one)", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := LoadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.RulesFile != "" {
		c.RulesFile = o.RulesFile
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ImageWorkers != 0 {
		c.ImageWorkers = o.ImageWorkers
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != FormatTable {
		c.Format = FormatJSON
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.ImageWorkers <= 0 {
		c.ImageWorkers = def.ImageWorkers
	}
	if c.ChapterWorkers <= 0 {
		c.ChapterWorkers = def.ChapterWorkers
	}
	if len(c.AllowExt) == 0 {
		c.AllowExt = def.AllowExt
	}
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, " -base_url: %s\n", c.BaseURL)
	fmt.Fprintf(w, " -timeout: %s\n", c.Timeout)
	fmt.Fprintf(w, " -format: %s\n", c.Format)
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.RulesFile != "" {
		fmt.Fprintf(w, " -rules_file: %s\n", c.RulesFile)
	}
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	fmt.Fprintf(w, " -output: %s\n", c.Output)
	fmt.Fprintf(w, " -image_workers: %d\n", c.ImageWorkers)
	fmt.Fprintf(w, " -chapter_workers: %d\n", c.ChapterWorkers)
	if c.KeepFolders {
		fmt.Fprintf(w, " -keep_folders: %t\n", c.KeepFolders)
	}
	if c.SkipBroken {
		fmt.Fprintf(w, " -skip_broken: %t\n", c.SkipBroken)
	}
	if len(c.AllowExt) > 0 {
		fmt.Fprintf(w, " -allow_ext: %s\n", strings.Join(c.AllowExt, ", "))
	}
}

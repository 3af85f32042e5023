package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/komikcast/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagBaseURL      string
	flagTimeout      time.Duration
	flagFormat       string
	flagUserAgent    string
	flagCookie       string
	flagCookieFile   string
	flagCloudflare   bool
	flagRulesFile    string
)

// store is swapped in tests.
var store = config.DefaultStore()

var rootCmd = &cobra.Command{
	Use:           "komikcast",
	Short:         "Scrape komikcast listings, series pages and chapters",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	pf.StringVar(&flagBaseURL, "base-url", "", "site origin (default https://komikcast02.com)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "per request timeout (default 10s)")
	pf.StringVar(&flagFormat, "format", "", "output format: json or table")
	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	pf.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	pf.BoolVar(&flagCloudflare, "cloudflare", false, "use a browser-like transport to pass the bot check")
	pf.StringVar(&flagRulesFile, "rules-file", "", "YAML file overriding extraction rules")
}

func globalOptions() config.Options {
	return config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		BaseURL:          flagBaseURL,
		Timeout:          flagTimeout,
		UserAgent:        flagUserAgent,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		CloudflareBypass: flagCloudflare,
		RulesFile:        flagRulesFile,
		Format:           flagFormat,
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/brogergvhs/komikcast/internal/config"
	"github.com/brogergvhs/komikcast/internal/extract"
	"github.com/brogergvhs/komikcast/internal/providers/komikcast"
	"github.com/brogergvhs/komikcast/internal/ui"
	"github.com/brogergvhs/komikcast/internal/util"
)

// app bundles what every scraping command needs.
type app struct {
	cfg    *config.Config
	used   string
	log    *ui.Logger
	http   *http.Client
	client *komikcast.Client
}

// newApp logs to logOut.
func newApp(opts config.Options, logOut io.Writer) (*app, error) {
	cfg, used, err := store.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	log := ui.NewLogger(logOut, cfg.Debug)
	log.Debugf("Config: %s", used)

	hc, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}

	var rules extract.RuleSet
	if cfg.RulesFile != "" {
		rules, err = extract.LoadRuleSet(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		log.Debugf("Rules overridden from %s: %v", cfg.RulesFile, rules.Kinds())
	}

	client := komikcast.New(komikcast.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: hc,
		Timeout:    cfg.Timeout,
		Rules:      rules,
		Logger:     log,
	})

	return &app{cfg: cfg, used: used, log: log, http: hc, client: client}, nil
}

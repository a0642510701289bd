package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/config"
	"github.com/theirongolddev/finbuddy/internal/logging"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/store"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagNoCache bool
	flagQuiet   bool
	flagOffline bool
)

var rootCmd = &cobra.Command{
	Use:   "finbuddy",
	Short: "Personal finance education assistant",
	Long: "Plan a budget, track savings goals, learn investing basics and check your " +
		"financial health. Pre-fill a session from a TOML scenario with --file.",
	SilenceUsage: true,
	RunE:         runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Scenario TOML file with income, expenses and goals")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite advice cache")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices and warnings")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Never call the model; use built-in answers")
}

// runtime is everything a command needs: effective config, logger and a
// session pre-filled from the scenario file.
type runtime struct {
	cfg   config.Config
	log   *logrus.Logger
	cache *store.Cache
	sess  *session.Session
}

// newRuntime is the shared setup path used by all session commands.
func newRuntime() (*runtime, error) {
	config.LoadEnvFile()
	fileCfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg := config.Effective(fileCfg)
	theme.SetActive(cfg.Appearance.Theme)

	level := cfg.General.LogLevel
	if flagQuiet {
		level = "error"
	}
	rt := &runtime{
		cfg: cfg,
		log: logging.New(level, cfg.General.LogFormat, os.Stderr),
	}

	opts := []advisor.Option{advisor.WithLogger(logging.Component(rt.log, "advisor"))}

	var gen advisor.Generator
	if !flagOffline {
		if client := advisor.NewAnthropicClient(advisor.ClientConfig{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout(),
		}); client != nil {
			gen = client
			if cache := rt.openCache(); cache != nil {
				opts = append(opts, advisor.WithCache(cache.Scoped(client.Model(), cfg.Cache.TTL())))
			}
		}
	}

	rt.sess = session.New(session.Config{
		Advisor:      advisor.New(gen, opts...),
		Currency:     cfg.General.Currency,
		EventsBuffer: cfg.Server.EventsBuffer,
		Logger:       logging.Component(rt.log, "session"),
	})

	if flagFile != "" {
		sc, err := session.LoadScenario(flagFile)
		if err != nil {
			rt.Close()
			return nil, err
		}
		if err := rt.sess.Apply(sc); err != nil {
			rt.Close()
			return nil, fmt.Errorf("applying scenario %s: %w", flagFile, err)
		}
		rt.notice("Loaded %d income, %d expenses, %d goals from %s",
			len(sc.Income), len(sc.Expenses), len(sc.Goals), flagFile)
	}
	if !rt.sess.Online() {
		rt.notice("No API key configured; answers come from built-in guidance")
	}

	return rt, nil
}

// openCache opens the advice cache, or returns nil when it is disabled or
// unavailable.
func (rt *runtime) openCache() *store.Cache {
	if flagNoCache || !rt.cfg.Cache.Enabled {
		return nil
	}
	cache, err := store.Open(rt.cfg.Cache.DBPath())
	if err != nil {
		rt.log.WithError(err).Warn("advice cache unavailable")
		return nil
	}
	rt.cache = cache
	return cache
}

// Close releases the cache database.
func (rt *runtime) Close() {
	if rt.cache != nil {
		_ = rt.cache.Close()
	}
}

// notice prints a progress line to stderr unless --quiet is set.
func (rt *runtime) notice(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

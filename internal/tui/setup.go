package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/config"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	APIKey   string
	Model    string
	Currency string
	Theme    string
	Cache    bool
}

var modelOptions = []string{
	"claude-3-5-haiku-latest",
	"claude-3-5-sonnet-latest",
	"claude-sonnet-4-0",
}

// SetupValuesFrom seeds the form from an existing config. The API key stays
// empty so that leaving it blank keeps the stored key.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Model:    cfg.LLM.Model,
		Currency: cfg.General.Currency,
		Theme:    cfg.Appearance.Theme,
		Cache:    cfg.Cache.Enabled,
	}
}

// NewSetupForm builds the setup wizard bound to vals. currentKey is shown
// masked in the key field description.
func NewSetupForm(vals *SetupValues, currentKey string) *huh.Form {
	keyDesc := "Used for personalized advice. Leave blank to skip."
	if currentKey != "" {
		keyDesc = "Current: " + config.MaskAPIKey(currentKey) + ". Leave blank to keep it."
	}

	models := make([]huh.Option[string], 0, len(modelOptions)+1)
	known := false
	for _, m := range modelOptions {
		models = append(models, huh.NewOption(m, m))
		known = known || m == vals.Model
	}
	if !known && vals.Model != "" {
		models = append(models, huh.NewOption(vals.Model+" (current)", vals.Model))
	}

	themes := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to FinBuddy").
				Description("Your personal finance education assistant.\nA few settings and you are ready."),
			huh.NewInput().
				Title("Anthropic API key").
				Description(keyDesc).
				Placeholder("sk-ant-...").
				EchoMode(huh.EchoModePassword).
				Value(&vals.APIKey),
			huh.NewSelect[string]().
				Title("Model").
				Options(models...).
				Value(&vals.Model),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}).
				Value(&vals.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Cache model answers on disk?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.Cache),
		),
	).WithTheme(huh.ThemeDracula())
}

// ApplySetup writes the form answers into cfg.
func ApplySetup(cfg *config.Config, vals SetupValues) {
	if key := strings.TrimSpace(vals.APIKey); key != "" {
		cfg.LLM.APIKey = key
	}
	if vals.Model != "" {
		cfg.LLM.Model = vals.Model
	}
	if cur := strings.TrimSpace(vals.Currency); cur != "" {
		cfg.General.Currency = cur
	}
	if vals.Theme != "" {
		cfg.Appearance.Theme = vals.Theme
	}
	cfg.Cache.Enabled = vals.Cache
}

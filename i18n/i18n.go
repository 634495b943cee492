// Package i18n loads the site's message catalogs and picks the locale a
// request should be served in.
package i18n

import (
	"embed"
	"fmt"
	"sort"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/yaml.v3"
)

const (
	English       = "en"
	French        = "fr"
	DefaultLocale = French
	CookieName    = "locale"
)

var SupportedLocales = []string{English, French}

//go:embed messages/*.yaml
var messageFiles embed.FS

// Catalog is the set of messages for one locale.
type Catalog struct {
	locale   string
	trans    ut.Translator
	messages map[string]string
	fallback *Catalog
}

// Bundle holds a catalog per supported locale.
type Bundle struct {
	uni      *ut.UniversalTranslator
	catalogs map[string]*Catalog
}

// NewBundle loads the embedded catalogs.
func NewBundle() (*Bundle, error) {
	translators := map[string]locales.Translator{
		English: en.New(),
		French:  fr.New(),
	}

	bundle := &Bundle{
		uni:      ut.New(translators[DefaultLocale], translators[English], translators[French]),
		catalogs: make(map[string]*Catalog),
	}

	for _, locale := range SupportedLocales {
		raw, err := messageFiles.ReadFile(fmt.Sprintf("messages/%s.yaml", locale))
		if err != nil {
			return nil, fmt.Errorf("NewBundle: %v", err)
		}

		catalog, err := bundle.loadCatalog(locale, raw)
		if err != nil {
			return nil, fmt.Errorf("NewBundle: %s: %v", locale, err)
		}
		bundle.catalogs[locale] = catalog
	}

	for locale, catalog := range bundle.catalogs {
		if locale != DefaultLocale {
			catalog.fallback = bundle.catalogs[DefaultLocale]
		}
	}

	return bundle, nil
}

func (b *Bundle) loadCatalog(locale string, raw []byte) (*Catalog, error) {
	namespaces := map[string]map[string]string{}
	if err := yaml.Unmarshal(raw, &namespaces); err != nil {
		return nil, err
	}

	trans, found := b.uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("no translator registered for %q", locale)
	}

	messages := make(map[string]string)
	for namespace, entries := range namespaces {
		for key, text := range entries {
			fullKey := namespace + "." + key
			if err := trans.Add(fullKey, text, true); err != nil {
				return nil, fmt.Errorf("%s: %v", fullKey, err)
			}
			messages[fullKey] = text
		}
	}

	return &Catalog{locale: locale, trans: trans, messages: messages}, nil
}

// Catalog returns the catalog for locale, or the default one when the
// locale is not supported.
func (b *Bundle) Catalog(locale string) *Catalog {
	if catalog, ok := b.catalogs[locale]; ok {
		return catalog
	}
	return b.catalogs[DefaultLocale]
}

func (c *Catalog) Locale() string {
	return c.locale
}

// Text returns the message for key with {0}, {1}... replaced by params.
// Missing keys fall back to the default locale, then to the key itself.
func (c *Catalog) Text(key string, params ...string) string {
	if _, ok := c.messages[key]; ok {
		text, err := c.trans.T(key, params...)
		if err == nil {
			return text
		}
	}

	if c.fallback != nil {
		return c.fallback.Text(key, params...)
	}

	return key
}

// Has reports whether key is defined in this catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Keys returns the catalog keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for key := range c.messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Messages returns a copy of the raw, unformatted messages.
func (c *Catalog) Messages() map[string]string {
	out := make(map[string]string, len(c.messages))
	for k, v := range c.messages {
		out[k] = v
	}
	return out
}

func IsSupported(locale string) bool {
	for _, supported := range SupportedLocales {
		if supported == locale {
			return true
		}
	}
	return false
}

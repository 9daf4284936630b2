// Package i18n resolves translation keys for field titles and help texts from
// YAML locale catalogs.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Translator looks up localized strings for one locale. Missing keys resolve
// to the key itself so untranslated fields stay visible instead of failing a
// render.
type Translator struct {
	locale  string
	entries map[string]string
}

// Load reads <dir>/<locale>.yml, a flat mapping of key to translated string.
func Load(dir, locale string) (*Translator, error) {
	path := filepath.Join(dir, locale+".yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale catalog: %w", err)
	}
	entries := make(map[string]string)
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse locale catalog %s: %w", path, err)
	}
	return &Translator{locale: locale, entries: entries}, nil
}

// NewStatic builds a translator from an in-memory catalog, used in tests and
// when no locale directory is configured.
func NewStatic(locale string, entries map[string]string) *Translator {
	if entries == nil {
		entries = map[string]string{}
	}
	return &Translator{locale: locale, entries: entries}
}

// Locale returns the catalog's locale tag.
func (t *Translator) Locale() string { return t.locale }

// Lookup returns the translation for key, or key itself when absent.
func (t *Translator) Lookup(key string) string {
	if v, ok := t.entries[key]; ok {
		return v
	}
	return key
}

// Package i18n resolves display text for the front-ends. Strings come from the
// backend translation service; anything it does not provide falls back to the
// built-in English labels so the forms stay usable when it is down.
package i18n

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var defaults = mustLoadDefaults()

func mustLoadDefaults() map[string]string {
	m := make(map[string]string)
	if err := yaml.Unmarshal(defaultsYAML, &m); err != nil {
		panic(fmt.Sprintf("i18n: invalid defaults.yaml: %v", err))
	}

	return m
}

// Catalog maps translation keys to display strings for one language.
type Catalog map[string]string

// T returns the text for key, falling back to the default label and finally
// to the key itself.
func (c Catalog) T(key string) string {
	if v := c[key]; v != "" {
		return v
	}

	if v := defaults[key]; v != "" {
		return v
	}

	return key
}

// Decode reads a translation payload. Both the wrapped form
// {"translations": {...}} and a flat key/value object are accepted; non-string
// values are ignored.
func Decode(r io.Reader) (Catalog, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading translations: %w", err)
	}

	body, err = toUTF8(body)
	if err != nil {
		return nil, fmt.Errorf("decoding charset: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding translations: %w", err)
	}

	if nested, ok := raw["translations"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			raw = inner
		}
	}

	cat := make(Catalog, len(raw))

	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}

		cat[k] = s
	}

	return cat, nil
}

// Source fetches the catalog for a language.
type Source interface {
	Translations(ctx context.Context, lang string) (Catalog, error)
}

// Load fetches the catalog for lang. A failing source never blocks the
// caller: the error is logged and an empty catalog (all defaults) returned.
func Load(ctx context.Context, src Source, lang string) Catalog {
	cat, err := src.Translations(ctx, lang)
	if err != nil {
		slog.Warn("translations unavailable, using defaults", "lang", lang, "error", err)
		return Catalog{}
	}

	return cat
}

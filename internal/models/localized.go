package models

import "strings"

// Localized maps a language tag ("ru", "fr", ...) to a translated string.
type Localized map[string]string

// Get returns the translation for lang, then for fallback, then any
// non-blank translation.
func (l Localized) Get(lang, fallback string) string {
	if v := strings.TrimSpace(l[lang]); v != "" {
		return v
	}
	if v := strings.TrimSpace(l[fallback]); v != "" {
		return v
	}
	for _, v := range l {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// IsBlank reports whether every translation is empty.
func (l Localized) IsBlank() bool {
	for _, v := range l {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Normalize trims every value, drops tags outside langs and fills the
// missing languages from primary (or the first non-blank value). The
// result is never nil.
func (l Localized) Normalize(langs []string, primary string) Localized {
	out := make(Localized, len(langs))
	allowed := make(map[string]bool, len(langs))
	for _, lang := range langs {
		allowed[lang] = true
	}
	for k, v := range l {
		k = strings.ToLower(strings.TrimSpace(k))
		if !allowed[k] {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}

	base := out[primary]
	if base == "" {
		for _, lang := range langs {
			if out[lang] != "" {
				base = out[lang]
				break
			}
		}
	}
	if base == "" {
		return out
	}
	for _, lang := range langs {
		if out[lang] == "" {
			out[lang] = base
		}
	}
	return out
}

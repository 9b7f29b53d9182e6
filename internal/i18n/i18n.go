// Package i18n renders bill dates and statuses for the supported locales.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// supported lists the locales with catalogs. The first entry is the default.
var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var messages = mustBuildCatalog()

// Default returns the default locale.
func Default() language.Tag {
	return supported[0]
}

// Supported returns the locales with catalogs.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match returns the supported locale closest to tag.
func Match(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// ParseLocale resolves a locale string such as "fr", "en-US" or an
// Accept-Language header value. Empty or invalid input yields Default.
func ParseLocale(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default()
	}
	_, idx := language.MatchStrings(matcher, value)
	return supported[idx]
}

func printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag), message.Catalog(messages))
}

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Default()))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

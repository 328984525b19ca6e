package pages

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// PriceUnavailable is shown for products without a price.
const PriceUnavailable = "Preço indisponível"

// DateUnavailable is shown for posts without a publication date.
const DateUnavailable = "Data não informada"

// ExcerptLength is the rune budget of a blog card excerpt.
const ExcerptLength = 200

// FormatPrice renders value as Brazilian reais, e.g. "R$ 1.234,50". The sign
// goes before the currency symbol.
func FormatPrice(value *float64) string {
	if value == nil {
		return PriceUnavailable
	}
	if *value < 0 {
		return "-R$ " + humanize.FormatFloat("#.###,##", -*value)
	}
	return "R$ " + humanize.FormatFloat("#.###,##", *value)
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO timestamp as "02 de janeiro de 2024". Values that
// do not parse are returned as received.
func FormatDate(value *string) string {
	if value == nil || *value == "" {
		return DateUnavailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *value); err == nil {
			return fmt.Sprintf("%02d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
		}
	}
	return *value
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML replaces every tag with a space.
func StripHTML(value string) string {
	return tagPattern.ReplaceAllString(value, " ")
}

// Excerpt strips markup, collapses whitespace and cuts the text at length
// runes, appending an ellipsis when something was cut.
func Excerpt(content string, length int) string {
	clean := strings.TrimSpace(spacePattern.ReplaceAllString(StripHTML(content), " "))
	if utf8.RuneCountInString(clean) <= length {
		return clean
	}
	runes := []rune(clean)
	return strings.TrimSpace(string(runes[:length])) + "…"
}

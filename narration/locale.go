package narration

import "golang.org/x/text/language"

var (
	catalogs = []Catalog{English, Spanish}
	matcher  = language.NewMatcher([]language.Tag{English.Tag, Spanish.Tag})
)

// Lookup finds the catalog closest to a BCP 47 tag such as "es-MX".
// It reports false for malformed or unsupported tags.
func Lookup(locale string) (Catalog, bool) {
	tag, err := language.Parse(locale)
	if err != nil {
		return English, false
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return English, false
	}

	return catalogs[index], true
}

// ForLocale is Lookup with English as the fallback.
func ForLocale(locale string) Catalog {
	c, _ := Lookup(locale)
	return c
}

// Supported lists the tags Lookup can resolve to.
func Supported() []string {
	tags := make([]string, len(catalogs))
	for i, c := range catalogs {
		tags[i] = c.Tag.String()
	}

	return tags
}

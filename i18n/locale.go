package i18n

import (
	"golang.org/x/text/language"
)

// Negotiate picks the locale for a request: a supported locale cookie wins,
// then the preferred Accept-Language entry when its base language is
// supported, then DefaultLocale.
func Negotiate(cookieLocale, acceptLanguage string) string {
	if IsSupported(cookieLocale) {
		return cookieLocale
	}

	if preferred := preferredLanguage(acceptLanguage); IsSupported(preferred) {
		return preferred
	}

	return DefaultLocale
}

// preferredLanguage returns the base language of the highest weighted tag.
func preferredLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}

	base, _ := tags[0].Base()
	return base.String()
}

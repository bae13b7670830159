package analysis

import "unicode"

// DetectLanguage is a coarse script-based guess used on the fallback path.
// The remote service does real detection; here anything Latin-script is
// reported as English.
func DetectLanguage(text string) string {
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Arabic, r):
			return "ar"
		case unicode.Is(unicode.Devanagari, r):
			return "hi"
		case unicode.Is(unicode.Han, r):
			return "zh"
		case unicode.Is(unicode.Cyrillic, r):
			return "ru"
		}
	}
	return "en"
}

package openai

import (
	"sort"
	"strings"
)

// Hebrew number phrases, matched before single words so "אחד עשרה" is not
// left half-removed as "עשרה".
var numberPhrases = []string{
	"אחד עשרה", "אחד עשר", "שתיים עשרה", "שתיים עשר", "שלוש עשרה", "שלוש עשר",
	"ארבע עשרה", "ארבע עשר", "חמש עשרה", "חמש עשר", "שש עשרה", "שש עשר",
	"שבע עשרה", "שבע עשר", "שמונה עשרה", "שמונה עשר", "תשע עשרה", "תשע עשר",
	"שלוש מאות", "ארבע מאות", "חמש מאות", "שש מאות", "שבע מאות", "שמונה מאות", "תשע מאות",
}

var numberWords = map[string]bool{
	"אחד": true, "שתיים": true, "שלוש": true, "ארבע": true, "חמש": true,
	"שש": true, "שבע": true, "שמונה": true, "תשע": true, "עשר": true,
	"עשרה": true, "עשרים": true, "שלושים": true, "ארבעים": true, "חמישים": true,
	"שישים": true, "שבעים": true, "שמונים": true, "תשעים": true,
	"מאה": true, "מאתיים": true,
	"יא": true, "יב": true, "יג": true, "יד": true, "טו": true, "טז": true,
	"יז": true, "יח": true, "יט": true, "כ": true, "ל": true,
}

var sortedNumberPhrases = func() []string {
	phrases := make([]string, len(numberPhrases))
	copy(phrases, numberPhrases)
	sort.Slice(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})
	return phrases
}()

// stripNumberWords removes Hebrew number words from a keyword, so a count
// attached to a concept ("אחד עשרה בחינות") leaves just the concept.
// Returns the keyword unchanged when nothing but numbers would remain.
func stripNumberWords(keyword string) string {
	if keyword == "" {
		return keyword
	}

	result := keyword
	for _, phrase := range sortedNumberPhrases {
		if strings.Contains(result, phrase) {
			result = strings.ReplaceAll(result, " "+phrase+" ", " ")
			result = strings.ReplaceAll(result, phrase+" ", "")
			result = strings.ReplaceAll(result, " "+phrase, "")
		}
	}

	var kept []string
	for _, w := range strings.Fields(result) {
		if !numberWords[w] {
			kept = append(kept, w)
		}
	}
	final := strings.TrimSpace(strings.Join(kept, " "))

	if final == "" || final == keyword {
		return keyword
	}
	return final
}

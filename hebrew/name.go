// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package hebrew

import (
	"regexp"
	"strings"
)

var (
	// Any word ending in מאמר ("the discourse", "in the discourse", ...)
	// is filler around the actual title.
	maamarWordRe = regexp.MustCompile(`\S*מאמר\s*`)

	// The ד"ה marker ("opening words") with any quote character, possibly
	// wrapped in pipes by upstream formatting.
	dhMarkerRe = regexp.MustCompile("\\|?ד[״\"׳'`′″‴]ה\\|?\\s*")
)

// CleanName strips query filler from a discourse-name input: words ending in
// מאמר, digits, and redundant whitespace.
func CleanName(text string) string {
	if text == "" {
		return text
	}
	text = maamarWordRe.ReplaceAllString(strings.TrimSpace(text), "")
	text = digitsRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// StripMarker removes ד"ה markers from text, leaving the opening words
// themselves in place.
func StripMarker(text string) string {
	if text == "" {
		return text
	}
	return strings.TrimSpace(dhMarkerRe.ReplaceAllString(text, ""))
}

// ExtractTitle reduces free-form input to the bare discourse title. The ד"ה
// marker is removed; a year token is skipped; the first remaining word that
// carries gershayim or geresh is taken to start a source citation (סה"מ and
// the like), and cuts the title off.
func ExtractTitle(text string) string {
	if text == "" {
		return text
	}
	text = StripMarker(text)

	var title []string
	for _, word := range strings.Fields(text) {
		if strings.ContainsAny(word, "״׳") {
			if strings.HasPrefix(word, "תש") {
				continue
			}
			break
		}
		title = append(title, word)
	}
	return strings.Join(title, " ")
}

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

// Hebrew years of the current millennium all start with תש ("5700"), with an
// optional gershayim before the last letter: תשי״א, תשכ"ח, תשנב.
var (
	yearRe = regexp.MustCompile(`תש[א-ת]{1,2}(?:[״"׳'][א-ת]|[א-ת])?`)

	// looseYearRe tolerates any quote character anywhere after the prefix,
	// for splitting free-form input where the year delimits a question.
	looseYearRe = regexp.MustCompile("תש[א-ת״\"׳'`′″‴]+")

	yearHePrefixRe = regexp.MustCompile(`^ה['׳]?`)
	yearMarksRe    = regexp.MustCompile(`[״"'׳/]`)

	shnatRe  = regexp.MustCompile(`\s*(?:משנת|מ?שנת|בשנת)\s*$`)
	digitsRe = regexp.MustCompile(`\d+`)
)

// ExtractYear finds the first Hebrew year token in text and returns the text
// with that token removed alongside the token itself, quote marks intact.
// When no year is present it returns the input unchanged and "".
func ExtractYear(text string) (rest, year string) {
	if text == "" {
		return text, ""
	}
	year = yearRe.FindString(text)
	if year == "" {
		return text, ""
	}
	rest = strings.Replace(text, year, "", 1)
	return strings.Join(strings.Fields(rest), " "), year
}

// FindYear returns the first Hebrew year token in text, or "".
func FindYear(text string) string {
	return yearRe.FindString(text)
}

// NormalizeYear reduces a year token to bare letters for comparison: a
// leading ה (as in ה'תשי"א) and every quote mark or slash are dropped, so
// תשי״א, ה'תשיא and תשי"א all normalize to תשיא.
func NormalizeYear(year string) string {
	year = yearHePrefixRe.ReplaceAllString(year, "")
	return yearMarksRe.ReplaceAllString(year, "")
}

// YearsEqual reports whether two year tokens name the same year after
// normalization. Two empty tokens are not considered equal.
func YearsEqual(a, b string) bool {
	na, nb := NormalizeYear(a), NormalizeYear(b)
	return na != "" && na == nb
}

// ParsedInput is the result of splitting free-form input around a year token.
type ParsedInput struct {
	Name     string
	Year     string
	Question string
}

// ParseComplexInput splits input of the form "[title] [year] [question]".
// Words ending in מאמר and digits are dropped first; if a year token is
// found, everything before it (minus a trailing משנת/בשנת) is the title and
// everything after it is the question.
func ParseComplexInput(text string) ParsedInput {
	if text == "" {
		return ParsedInput{}
	}
	text = CleanName(text)

	loc := looseYearRe.FindStringIndex(text)
	if loc == nil {
		return ParsedInput{Name: strings.TrimSpace(text)}
	}
	year := text[loc[0]:loc[1]]
	before := strings.TrimSpace(text[:loc[0]])
	after := strings.TrimSpace(text[loc[1]:])

	before = strings.TrimSpace(shnatRe.ReplaceAllString(before, ""))
	before = strings.TrimSpace(digitsRe.ReplaceAllString(before, ""))

	return ParsedInput{Name: before, Year: year, Question: after}
}

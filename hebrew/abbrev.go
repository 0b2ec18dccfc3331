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
	"sort"
	"strings"
)

// quoteVariants are the quote characters users actually type in place of the
// canonical gershayim. An abbreviation stored as ש"פ must also match ש״פ,
// ש'פ and so on.
var quoteVariants = []string{`"`, "'", "״", "׳", "`", "′", "″", "‴"}

type abbrevRule struct {
	abbr     string
	meaning  string
	variants []string
}

// Expander rewrites known abbreviations in a text into their full forms.
// Expansion order is fixed at construction time (longest abbreviation first)
// so a given input always expands the same way regardless of table origin.
type Expander struct {
	rules []abbrevRule
}

// NewExpander builds an Expander from an abbreviation table. Entries with an
// empty abbreviation or meaning are ignored.
func NewExpander(table map[string]string) *Expander {
	rules := make([]abbrevRule, 0, len(table))
	for abbr, meaning := range table {
		if abbr == "" || meaning == "" {
			continue
		}
		rules = append(rules, abbrevRule{
			abbr:     abbr,
			meaning:  meaning,
			variants: quoteVariantsOf(abbr),
		})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].abbr) != len(rules[j].abbr) {
			return len(rules[i].abbr) > len(rules[j].abbr)
		}
		return rules[i].abbr < rules[j].abbr
	})
	return &Expander{rules: rules}
}

// Len reports the number of abbreviations in the table.
func (e *Expander) Len() int { return len(e.rules) }

// Expand replaces every occurrence of a known abbreviation in text with its
// full form. An abbreviation written with any quote character matches the
// table entry; for each abbreviation the stored form wins over its variants.
func (e *Expander) Expand(text string) string {
	if text == "" || len(e.rules) == 0 {
		return text
	}
	result := text
	for _, r := range e.rules {
		if strings.Contains(result, r.abbr) {
			result = strings.ReplaceAll(result, r.abbr, r.meaning)
			continue
		}
		for _, v := range r.variants {
			if strings.Contains(result, v) {
				result = strings.ReplaceAll(result, v, r.meaning)
				break
			}
		}
	}
	return result
}

// quoteVariantsOf returns the abbreviation rewritten with each quote
// character, or nil if it carries no quote at all.
func quoteVariantsOf(abbr string) []string {
	if !strings.ContainsAny(abbr, `"'״׳`) {
		return nil
	}
	variants := make([]string, 0, len(quoteVariants))
	for _, q := range quoteVariants {
		v := abbr
		for _, orig := range []string{`"`, "'", "״", "׳"} {
			v = strings.ReplaceAll(v, orig, q)
		}
		if v != abbr {
			variants = append(variants, v)
		}
	}
	return variants
}

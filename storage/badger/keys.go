package badger

import (
	"fmt"

	"github.com/poiesic/maamar/core"
)

// Key prefixes for different data types
const (
	articlePrefix     = "artrec"
	articleNamePrefix = "artname"
	abbrevPrefix      = "abbrev"
)

// makeArticleKey generates a key for an article by ID.
func makeArticleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", articlePrefix, id))
}

// makeArticleNameKey generates a key for the name index.
func makeArticleNameKey(name string) []byte {
	return []byte(articleNamePrefix + ":" + name)
}

// makeAbbrevKey generates a key for an abbreviation table entry.
func makeAbbrevKey(abbr string) []byte {
	return []byte(abbrevPrefix + ":" + abbr)
}

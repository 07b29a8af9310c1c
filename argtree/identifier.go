package argtree

import (
	"regexp"
	"strings"

	"github.com/dzonerzy/go-argtree/internal/intern"
)

var identifierWord = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9]*`)

var identifiers = intern.NewTable(normalizeIdentifier, intern.DefaultLimit)

// Identifier normalizes s into a lowercase snake_case name built from its
// identifier-friendly words: "--no-check" and "No Check" both become
// "no_check". Strings without such words normalize to "".
func Identifier(s string) string {
	return identifiers.Get(s)
}

func normalizeIdentifier(s string) string {
	words := identifierWord.FindAllString(s, -1)
	return strings.ToLower(strings.Join(words, "_"))
}

// NameFromAliases derives an argument name from its longest alias, so
// []string{"-v", "--verbose"} yields "verbose".
func NameFromAliases(aliases ...string) string {
	longest := ""
	for _, alias := range aliases {
		if len(alias) > len(longest) {
			longest = alias
		}
	}
	return Identifier(longest)
}

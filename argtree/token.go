package argtree

import (
	"fmt"

	"github.com/dzonerzy/go-argtree/result"
)

// Token is one lexical unit of argv as produced by a Dialect. The set of
// implementations is closed: WordToken, FlagToken and FlagStopToken.
type Token interface {
	fmt.Stringer
	token()
}

// WordToken is a bare word: a positional value, an option value or a
// subcommand name.
type WordToken struct {
	Text string
}

// FlagToken is a flag occurrence. Name is an identifier; Value is the
// attached value, if any. An attached empty value ("-x=") is Some("").
type FlagToken struct {
	Name  string
	Value result.Option[string]
}

// FlagStopToken marks the end of flag parsing ("--").
type FlagStopToken struct{}

func (WordToken) token()     {}
func (FlagToken) token()     {}
func (FlagStopToken) token() {}

func (w WordToken) String() string { return fmt.Sprintf("Word(%q)", w.Text) }

func (f FlagToken) String() string {
	if v, ok := f.Value.Get(); ok {
		return fmt.Sprintf("Flag(%s=%q)", f.Name, v)
	}
	return fmt.Sprintf("Flag(%s)", f.Name)
}

func (FlagStopToken) String() string { return "FlagStop" }

// Word is shorthand for a WordToken.
func Word(text string) Token { return WordToken{Text: text} }

// FlagNamed is shorthand for a FlagToken without a value.
func FlagNamed(name string) Token { return FlagToken{Name: name} }

// FlagWithValue is shorthand for a FlagToken with an attached value.
func FlagWithValue(name, value string) Token {
	return FlagToken{Name: name, Value: result.Some(value)}
}

// FlagStop is the "--" token.
var FlagStop Token = FlagStopToken{}

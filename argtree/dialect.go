package argtree

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dzonerzy/go-argtree/internal/intern"
	"github.com/dzonerzy/go-argtree/result"
)

// Dialect defines the token grammar of argv and how names are rendered back
// to the user. POSIX is the only implementation shipped.
type Dialect interface {
	// Tokenize converts raw argv (without the program name) into tokens.
	Tokenize(argv []string) []Token
	// FormatFlag renders an identifier the way a user would type the flag.
	FormatFlag(name string) string
	// FormatWord renders an identifier as a placeholder word (metavar).
	FormatWord(name string) string
	// FormatError renders a parse error as a user-facing diagnostic.
	FormatError(err error) string
}

// tokenAppender is implemented by dialects that can tokenize into a
// caller supplied buffer.
type tokenAppender interface {
	AppendTokens(dst []Token, argv []string) []Token
}

var (
	shortBundle = regexp.MustCompile(`^-([a-z]+)(=(.*))?$`)
	longFlag    = regexp.MustCompile(`^--([a-z-]+)(=(.*))?$`)
)

type posix struct{}

// POSIX returns the POSIX/GNU dialect: "-abc" bundles, "--long-name",
// "=value" attachment and a "--" stop token.
func POSIX() Dialect { return posix{} }

func (d posix) Tokenize(argv []string) []Token {
	return d.AppendTokens(make([]Token, 0, len(argv)), argv)
}

// AppendTokens tokenizes argv, appending to dst.
func (posix) AppendTokens(dst []Token, argv []string) []Token {
	stopped := false
	for _, arg := range argv {
		if stopped {
			dst = append(dst, WordToken{Text: arg})
			continue
		}
		if arg == "--" {
			stopped = true
			dst = append(dst, FlagStop)
			continue
		}

		if m := shortBundle.FindStringSubmatchIndex(arg); m != nil {
			letters := arg[m[2]:m[3]]
			for i := 0; i < len(letters)-1; i++ {
				dst = append(dst, FlagToken{Name: intern.Letter(letters[i])})
			}
			dst = append(dst, FlagToken{
				Name:  intern.Letter(letters[len(letters)-1]),
				Value: attachedValue(arg, m),
			})
			continue
		}

		if m := longFlag.FindStringSubmatchIndex(arg); m != nil {
			dst = append(dst, FlagToken{
				Name:  Identifier(arg[m[2]:m[3]]),
				Value: attachedValue(arg, m),
			})
			continue
		}

		dst = append(dst, WordToken{Text: arg})
	}
	return dst
}

// attachedValue extracts group 3 of a flag match; group 2 tells "-x=" apart
// from "-x".
func attachedValue(arg string, m []int) result.Option[string] {
	if m[4] < 0 {
		return result.None[string]()
	}
	return result.Some(arg[m[6]:m[7]])
}

func (posix) FormatFlag(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + strings.ReplaceAll(name, "_", "-")
}

func (posix) FormatWord(name string) string {
	return strings.ToUpper(name)
}

// FormatError renders the innermost cause of err, the chain of subcommands
// it happened in and a suggestion when one is known:
//
//	error: unknown flag --verbos (in remote add)
//	Did you mean '--verbose'?
func (d posix) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var path []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch w := e.(type) {
		case *SubcommandParsingError:
			path = append(path, w.Subcommand)
		case *SubcommandFinalizationError:
			path = append(path, w.Subcommand)
		}
	}

	var b strings.Builder
	b.WriteString("error: ")
	b.WriteString(Cause(err).Error())
	if len(path) > 0 {
		fmt.Fprintf(&b, " (in %s)", strings.Join(path, " "))
	}

	var unknownFlag *UnexpectedFlagError
	var unknownCmd *UnknownSubcommandError
	switch {
	case errors.As(err, &unknownFlag) && unknownFlag.Suggestion != "":
		fmt.Fprintf(&b, "\nDid you mean '%s'?", d.FormatFlag(unknownFlag.Suggestion))
	case errors.As(err, &unknownCmd) && unknownCmd.Suggestion != "":
		fmt.Fprintf(&b, "\nDid you mean '%s'?", unknownCmd.Suggestion)
	}

	var missing *MissingSubcommandError
	if errors.As(err, &missing) && len(missing.Available) > 0 {
		fmt.Fprintf(&b, "\nAvailable subcommands: %s", strings.Join(missing.Available, ", "))
	}
	return b.String()
}

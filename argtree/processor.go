package argtree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Processor converts the raw word(s) of one occurrence into a typed value.
type Processor interface {
	// Words returns how many words one occurrence consumes.
	Words() Arity
	// Process converts the words; len(words) lies within Words().
	Process(words ...string) (any, error)
	// Kind names the produced type, e.g. "int".
	Kind() string
}

type processor struct {
	kind  string
	words Arity
	fn    func(words []string) (any, error)
}

func (p *processor) Words() Arity { return p.words }
func (p *processor) Kind() string { return p.kind }

func (p *processor) Process(words ...string) (any, error) {
	if !p.words.Allows(len(words)) {
		return nil, fmt.Errorf("expected %s word(s), got %d", p.words, len(words))
	}
	return p.fn(words)
}

func single[T any](kind string, fn func(string) (T, error)) Processor {
	return &processor{
		kind:  kind,
		words: Exactly(1),
		fn: func(words []string) (any, error) {
			v, err := fn(words[0])
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// String keeps the word as is.
func String() Processor {
	return single("string", func(s string) (string, error) { return s, nil })
}

var (
	errNotInt      = errors.New("expected an integer")
	errNotFloat    = errors.New("expected a number")
	errNotBool     = errors.New("expected true or false")
	errNotDuration = errors.New("expected a duration such as 1h30m")
)

// Int parses decimal integers as well as 0x, 0o and 0b prefixed ones.
func Int() Processor {
	return single("int", func(s string) (int, error) {
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		n, err := strconv.ParseInt(s, 0, strconv.IntSize)
		if err != nil {
			return 0, errNotInt
		}
		return int(n), nil
	})
}

// Float parses a float64.
func Float() Processor {
	return single("float", func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errNotFloat
		}
		return f, nil
	})
}

// Bool parses the spellings accepted by strconv.ParseBool plus yes/no.
func Bool() Processor {
	return single("bool", func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off":
			return false, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, errNotBool
		}
		return b, nil
	})
}

// Duration parses a time.Duration.
func Duration() Processor {
	return single("duration", func(s string) (time.Duration, error) {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, errNotDuration
		}
		return d, nil
	})
}

// Func adapts a single-word conversion function.
func Func[T any](fn func(string) (T, error)) Processor {
	return single(fmt.Sprintf("%T", *new(T)), fn)
}

// Words adapts a conversion over min..max words per occurrence. Options
// using it read a run of following words and reject "--opt=value".
func Words[T any](min, max int, fn func([]string) (T, error)) Processor {
	return &processor{
		kind:  fmt.Sprintf("%T", *new(T)),
		words: Arity{Min: min, Max: max},
		fn: func(words []string) (any, error) {
			v, err := fn(words)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

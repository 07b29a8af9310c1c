package argtree

import (
	"go.uber.org/zap"

	"github.com/dzonerzy/go-argtree/internal/pool"
	"github.com/dzonerzy/go-argtree/result"
)

// tokenBuffers recycles token slices between Parse calls.
var tokenBuffers = pool.NewSlicePool[Token](16, 256)

// Parser parses argv against a command tree. It holds no per-parse state
// and is safe for concurrent use.
type Parser struct {
	root    *Command
	dialect Dialect
	log     *zap.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithDialect replaces the POSIX dialect.
func WithDialect(d Dialect) ParserOption {
	return func(p *Parser) {
		if d != nil {
			p.dialect = d
		}
	}
}

// WithLogger enables debug tracing of parse decisions.
func WithLogger(l *zap.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// NewParser creates a parser for root.
func NewParser(root *Command, opts ...ParserOption) *Parser {
	p := &Parser{
		root:    root,
		dialect: POSIX(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Command returns the root command.
func (p *Parser) Command() *Command { return p.root }

// Dialect returns the dialect used for tokenizing and diagnostics.
func (p *Parser) Dialect() Dialect { return p.dialect }

// Parse tokenizes argv (without the program name), parses it and
// finalizes the result.
func (p *Parser) Parse(argv []string) result.Result[*Tree, ParsingError] {
	var tokens []Token
	if app, ok := p.dialect.(tokenAppender); ok {
		buf := tokenBuffers.Get()
		defer tokenBuffers.Put(buf)
		*buf = app.AppendTokens(*buf, argv)
		tokens = *buf
	} else {
		tokens = p.dialect.Tokenize(argv)
	}

	res := result.AndThen(p.ParseTokens(tokens), func(raw *ParseResult) result.Result[*Tree, ParsingError] {
		return finalizer{log: p.log}.finalize(p.root, raw)
	})

	if res.IsErr() {
		p.log.Debug("parse failed", zap.Error(res.UnwrapErr()))
	} else {
		p.log.Debug("parse succeeded", zap.Strings("path", res.Unwrap().Path()))
	}
	return res
}

// ParseTokens runs only the token parser and returns the raw tree.
func (p *Parser) ParseTokens(tokens []Token) result.Result[*ParseResult, ParsingError] {
	return parseTokens(p.root, tokens, p.dialect, p.log)
}

// Parse parses argv against cmd with the POSIX dialect.
func Parse(cmd *Command, argv []string) result.Result[*Tree, ParsingError] {
	return NewParser(cmd).Parse(argv)
}

// ParseArgs is Parse returning the usual (value, error) pair.
func ParseArgs(cmd *Command, argv []string) (*Tree, error) {
	res := Parse(cmd, argv)
	if res.IsErr() {
		return nil, res.UnwrapErr()
	}
	return res.Unwrap(), nil
}

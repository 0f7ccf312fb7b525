package js

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Kind is the class of a lexical token.
type Kind int

const (
	Illegal Kind = iota
	Keyword
	Punctuator
	Identifier
	StringLiteral
	Number
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Punctuator:
		return "punctuator"
	case Identifier:
		return "identifier"
	case StringLiteral:
		return "string literal"
	case Number:
		return "number"
	default:
		return "illegal"
	}
}

var keywords = map[string]bool{
	"var":      true,
	"function": true,
	"return":   true,
}

// Position is a 1-based line and column in source text.
type Position struct {
	Line, Col int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Tok is a single token. Tokens are plain values and compare with ==.
//
// Keyword, Identifier, StringLiteral and Illegal tokens carry their text
// in Str, Punctuator tokens carry their character in Punct and Number
// tokens carry their value in Num.
type Tok struct {
	Kind  Kind
	Str   string
	Punct rune
	Num   uint64
	Position
}

func (t Tok) String() string {
	return fmt.Sprintf("%s [%s]", t.text(), t.Position)
}

// text describes the token without its position.
func (t Tok) text() string {
	switch t.Kind {
	case Punctuator:
		return fmt.Sprintf("%s '%c'", t.Kind, t.Punct)
	case Number:
		return fmt.Sprintf("%s %d", t.Kind, t.Num)
	case StringLiteral:
		return fmt.Sprintf("%s %q", t.Kind, t.Str)
	default:
		return fmt.Sprintf("%s '%s'", t.Kind, t.Str)
	}
}

// is reports whether t is the punctuator c.
func (t Tok) is(c rune) bool {
	return t.Kind == Punctuator && t.Punct == c
}

// Lexer turns source text into tokens on demand. A Lexer can be consumed
// only once; lex the same text again with a fresh Tokenize call.
type Lexer struct {
	src   string
	off   int
	pos   Position
	debug bool
}

// Tokenize returns a Lexer over src. No work is done until Next is called.
func Tokenize(src string) *Lexer {
	return &Lexer{src: src, pos: Position{Line: 1, Col: 1}}
}

// Debug turns on logging of every token the lexer produces.
func (l *Lexer) Debug(on bool) *Lexer {
	l.debug = on
	return l
}

// Next returns the next token, or false once the input is exhausted.
// Next never fails: characters outside the language become Illegal tokens.
func (l *Lexer) Next() (Tok, bool) {
	tok, ok := l.scan()
	if ok && l.debug {
		LogDebug("lex ->", tok.String())
	}
	return tok, ok
}

// All drains the lexer.
func (l *Lexer) All() []Tok {
	toks := make([]Tok, 0)
	for {
		tok, ok := l.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (l *Lexer) peekRune() rune {
	if l.off >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r
}

func (l *Lexer) peekRuneAt(n int) rune {
	off := l.off
	for ; n > 0 && off < len(l.src); n-- {
		_, size := utf8.DecodeRuneInString(l.src[off:])
		off += size
	}
	if off >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[off:])
	return r
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Col = 1
	} else {
		l.pos.Col++
	}
	return r
}

func (l *Lexer) skipSpaceAndComments() {
	for l.off < len(l.src) {
		c := l.peekRune()
		switch {
		case unicode.IsSpace(c):
			l.advance()
		case c == '/' && l.peekRuneAt(1) == '/':
			for l.off < len(l.src) && l.peekRune() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekRuneAt(1) == '*':
			l.advance()
			l.advance()
			for l.off < len(l.src) {
				if l.peekRune() == '*' && l.peekRuneAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() (Tok, bool) {
	l.skipSpaceAndComments()
	if l.off >= len(l.src) {
		return Tok{}, false
	}

	start := l.pos
	c := l.peekRune()
	switch {
	case isIdentStart(c):
		word := l.readWhile(isIdentPart)
		if keywords[word] {
			return Tok{Kind: Keyword, Str: word, Position: start}, true
		}
		return Tok{Kind: Identifier, Str: word, Position: start}, true
	case isDigit(c):
		digits := l.readWhile(isDigit)
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			// out of uint64 range
			return Tok{Kind: Illegal, Str: digits, Position: start}, true
		}
		return Tok{Kind: Number, Num: n, Position: start}, true
	case c == '"':
		l.advance()
		str := l.readWhile(func(r rune) bool { return r != '"' })
		if l.off < len(l.src) {
			l.advance() // closing quote
		}
		return Tok{Kind: StringLiteral, Str: str, Position: start}, true
	case isPunctuator(c):
		l.advance()
		return Tok{Kind: Punctuator, Punct: c, Position: start}, true
	default:
		l.advance()
		return Tok{Kind: Illegal, Str: string(c), Position: start}, true
	}
}

func (l *Lexer) readWhile(pred func(rune) bool) string {
	begin := l.off
	for l.off < len(l.src) && pred(l.peekRune()) {
		l.advance()
	}
	return l.src[begin:l.off]
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isPunctuator(r rune) bool {
	switch r {
	case '+', '-', '=', ';', '(', ')', '{', '}', ',', '.':
		return true
	default:
		return false
	}
}

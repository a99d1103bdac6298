package parser

import (
	"iter"
	"strings"
)

// Token is one %KEY% block of a desc record
type Token struct {
	Key    string
	Values []string
}

// Tokenizer splits the text of a desc record into Tokens.
//
// The grammar is line oriented:
//
//	%KEY%
//	value-line-1
//	value-line-2
//	<blank line>
//
// Tokenizing stops at the first position where no further block can be
// read. Malformed input therefore ends the sequence early instead of
// producing an error; the unread text is available from Remaining.
type Tokenizer struct {
	input string
}

// NewTokenizer creates a tokenizer over the text of one desc record
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{input: text}
}

// Next returns the next token. It returns false once no more tokens can be read.
func (t *Tokenizer) Next() (Token, bool) {
	rest := strings.TrimLeft(t.input, " \t\r\n")

	line, rest := cutLine(rest)
	key, ok := headerKey(line)
	if !ok {
		return Token{}, false
	}

	var values []string
	for rest != "" {
		next, after := cutLine(rest)
		value := strings.TrimLeft(next, " \t\r")
		if value == "" {
			break
		}
		if _, isHeader := headerKey(next); isHeader {
			break
		}
		values = append(values, value)
		rest = after
	}

	if len(values) == 0 {
		return Token{}, false
	}

	t.input = strings.TrimLeft(rest, " \t\r\n")
	return Token{Key: key, Values: values}, true
}

// Remaining returns the input that has not been consumed yet
func (t *Tokenizer) Remaining() string {
	return t.input
}

// All returns the remaining tokens as a sequence
func (t *Tokenizer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := t.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// cutLine splits s after its first line. The returned line has its line
// ending removed, including a trailing carriage return.
func cutLine(s string) (line, rest string) {
	line, rest, _ = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest
}

// headerKey extracts KEY from a "%KEY%" line
func headerKey(line string) (string, bool) {
	if len(line) < 3 || line[0] != '%' || line[len(line)-1] != '%' {
		return "", false
	}
	key := line[1 : len(line)-1]
	for i := 0; i < len(key); i++ {
		if !isAlphanumeric(key[i]) {
			return "", false
		}
	}
	return key, true
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

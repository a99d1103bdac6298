package parser

import (
	"reflect"
	"testing"
)

func collect(text string) ([]Token, string) {
	tz := NewTokenizer(text)
	var tokens []Token
	for tok := range tz.All() {
		tokens = append(tokens, tok)
	}
	return tokens, tz.Remaining()
}

func TestTokenizeMultipleTokens(t *testing.T) {
	tz := NewTokenizer("%name1%\nval1\n\n%name2%\nval2\n\n")

	tok, ok := tz.Next()
	if !ok {
		t.Fatal("Expected first token")
	}
	if !reflect.DeepEqual(tok, Token{Key: "name1", Values: []string{"val1"}}) {
		t.Errorf("Unexpected first token: %+v", tok)
	}
	if tz.Remaining() != "%name2%\nval2\n\n" {
		t.Errorf("Unexpected remaining input after first token: %q", tz.Remaining())
	}

	tok, ok = tz.Next()
	if !ok {
		t.Fatal("Expected second token")
	}
	if !reflect.DeepEqual(tok, Token{Key: "name2", Values: []string{"val2"}}) {
		t.Errorf("Unexpected second token: %+v", tok)
	}
	if tz.Remaining() != "" {
		t.Errorf("Expected all input consumed, got %q", tz.Remaining())
	}

	if _, ok := tz.Next(); ok {
		t.Error("Expected no third token")
	}
	if _, ok := tz.Next(); ok {
		t.Error("Expected tokenizer to stay exhausted")
	}
}

func TestTokenizeSingleToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "simple",
			input: "%foo%\nfoo\n",
			want:  []Token{{Key: "foo", Values: []string{"foo"}}},
		},
		{
			name:  "preserves key case",
			input: "%FILENAME%\nsupertux-0.6.2-3-x86_64.pkg.tar.zst\n",
			want:  []Token{{Key: "FILENAME", Values: []string{"supertux-0.6.2-3-x86_64.pkg.tar.zst"}}},
		},
		{
			name:  "no trailing newline",
			input: "%foo%\nfoo",
			want:  []Token{{Key: "foo", Values: []string{"foo"}}},
		},
		{
			name:  "leading blank lines and spaces",
			input: " \n\n  %foo%\nfoo\n",
			want:  []Token{{Key: "foo", Values: []string{"foo"}}},
		},
		{
			name:  "carriage returns",
			input: "%foo%\r\nfoo1\r\nfoo2\r\n\r\n",
			want:  []Token{{Key: "foo", Values: []string{"foo1", "foo2"}}},
		},
		{
			name:  "leading whitespace on value",
			input: "%foo%\n  foo1\n\tfoo2\n",
			want:  []Token{{Key: "foo", Values: []string{"foo1", "foo2"}}},
		},
		{
			name:  "header ends value run",
			input: "%foo%\nfoo\n%bar%\nbar\n",
			want: []Token{
				{Key: "foo", Values: []string{"foo"}},
				{Key: "bar", Values: []string{"bar"}},
			},
		},
		{
			name:  "value containing percent signs",
			input: "%desc%\n100% free\n",
			want:  []Token{{Key: "desc", Values: []string{"100% free"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := collect(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTokenizeMultipleValues(t *testing.T) {
	got, rest := collect("%DEPENDS%\ncurl\nopenal\nlibvorbis\n\n%MAKEDEPENDS%\ncmake\nboost\n")
	want := []Token{
		{Key: "DEPENDS", Values: []string{"curl", "openal", "libvorbis"}},
		{Key: "MAKEDEPENDS", Values: []string{"cmake", "boost"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %+v, want %+v", got, want)
	}
	if rest != "" {
		t.Errorf("Expected all input consumed, got %q", rest)
	}
}

func TestTokenizeStopsOnMalformedInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantRest  string
	}{
		{name: "missing leading percent", input: "foo%\nfoo\n", wantCount: 0, wantRest: "foo%\nfoo\n"},
		{name: "empty", input: "", wantCount: 0, wantRest: ""},
		{name: "only whitespace", input: "\n \n\t\n", wantCount: 0, wantRest: "\n \n\t\n"},
		{name: "empty key", input: "%%\nfoo\n", wantCount: 0, wantRest: "%%\nfoo\n"},
		{name: "non alphanumeric key", input: "%build_date%\n1\n", wantCount: 0, wantRest: "%build_date%\n1\n"},
		{name: "text after header", input: "%foo% bar\nfoo\n", wantCount: 0, wantRest: "%foo% bar\nfoo\n"},
		{name: "header without values", input: "%foo%\n\nbar\n", wantCount: 0, wantRest: "%foo%\n\nbar\n"},
		{name: "header at end of input", input: "%foo%\nfoo\n\n%bar%\n", wantCount: 1, wantRest: "%bar%\n"},
		{name: "garbage after first block", input: "%foo%\nfoo\n\ngarbage\n%bar%\nbar\n", wantCount: 1, wantRest: "garbage\n%bar%\nbar\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := collect(tt.input)
			if len(got) != tt.wantCount {
				t.Errorf("Got %d tokens, want %d: %+v", len(got), tt.wantCount, got)
			}
			if rest != tt.wantRest {
				t.Errorf("Remaining = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestHeaderKey(t *testing.T) {
	tests := []struct {
		line string
		key  string
		ok   bool
	}{
		{"%foo%", "foo", true},
		{"%FOO%", "FOO", true},
		{"%SHA256SUM%", "SHA256SUM", true},
		{"%foo", "", false},
		{"foo%", "", false},
		{"%fo o%", "", false},
		{"%", "", false},
	}

	for _, tt := range tests {
		key, ok := headerKey(tt.line)
		if key != tt.key || ok != tt.ok {
			t.Errorf("headerKey(%q) = (%q, %v), want (%q, %v)", tt.line, key, ok, tt.key, tt.ok)
		}
	}
}

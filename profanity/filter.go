// Package profanity masks words from a per-language dictionary.
package profanity

import (
	"bufio"
	"embed"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

//go:embed dict/*.txt
var dictionaries embed.FS

const Mask = '*'

// Filter is safe for concurrent use. A nil *Filter passes text through.
type Filter struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// New returns a filter seeded with the dictionaries of langs.
func New(langs ...string) (*Filter, error) {
	f := &Filter{words: make(map[string]struct{})}
	for _, lang := range langs {
		words, err := Dictionary(lang)
		if err != nil {
			return nil, err
		}
		f.Add(words...)
	}
	return f, nil
}

// Languages lists the embedded dictionaries.
func Languages() []string {
	entries, err := dictionaries.ReadDir("dict")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".txt"))
	}
	return langs
}

func Dictionary(lang string) ([]string, error) {
	f, err := dictionaries.Open("dict/" + strings.ToLower(lang) + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no profanity dictionary for %q", lang)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func (f *Filter) Add(words ...string) {
	fold := cases.Fold()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range words {
		if w = normalize(fold, w); w != "" {
			f.words[w] = struct{}{}
		}
	}
}

func (f *Filter) Remove(words ...string) {
	fold := cases.Fold()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range words {
		delete(f.words, normalize(fold, w))
	}
}

func (f *Filter) Words() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	words := make([]string, 0, len(f.words))
	for w := range f.words {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// Clean replaces every listed word in text with one Mask per rune.
// Everything else, including invalid UTF-8, is copied unchanged.
func (f *Filter) Clean(text string) string {
	if f == nil {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	f.scan(text, func(tok string, bad bool) {
		if bad {
			b.WriteString(strings.Repeat(string(Mask), utf8.RuneCountInString(tok)))
			return
		}
		b.WriteString(tok)
	})
	return b.String()
}

// Check reports whether text contains a listed word.
func (f *Filter) Check(text string) bool {
	if f == nil {
		return false
	}
	found := false
	f.scan(text, func(_ string, bad bool) {
		found = found || bad
	})
	return found
}

// scan splits text into word and non-word pieces in order.
func (f *Filter) scan(text string, emit func(piece string, bad bool)) {
	fold := cases.Fold()
	f.mu.RLock()
	defer f.mu.RUnlock()

	start, inWord := 0, false
	flush := func(end int) {
		if start == end {
			return
		}
		piece := text[start:end]
		bad := false
		if inWord {
			_, bad = f.words[normalize(fold, piece)]
		}
		emit(piece, bad)
		start = end
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		word := r != utf8.RuneError && isWordRune(r)
		if word != inWord {
			flush(i)
			inWord = word
		}
		i += size
	}
	flush(len(text))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func normalize(fold cases.Caser, w string) string {
	return fold.String(norm.NFKC.String(strings.TrimSpace(w)))
}

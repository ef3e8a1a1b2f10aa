package profanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	f.Add("bad", "Сука")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain word", input: "this is bad", want: "this is ***"},
		{name: "case insensitive", input: "BAD news", want: "*** news"},
		{name: "punctuation kept", input: "bad, bad!", want: "***, ***!"},
		{name: "substring untouched", input: "badge badminton", want: "badge badminton"},
		{name: "cyrillic", input: "ну ты сука.", want: "ну ты ****."},
		{name: "empty", input: "", want: ""},
		{name: "nothing to mask", input: "hello world", want: "hello world"},
		{name: "invalid utf8 copied", input: "bad \xff", want: "*** \xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Clean(tt.input))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	f, err := New("en", "ru")
	require.NoError(t, err)
	f.Add("bad")

	for _, s := range []string{"this is bad", "Shit happens, BAD day", "всё хуйня", "ok"} {
		once := f.Clean(s)
		assert.Equal(t, once, f.Clean(once), s)
		assert.Equal(t, len([]rune(s)), len([]rune(once)), s)
	}
}

func TestCheck(t *testing.T) {
	f, err := New("en")
	require.NoError(t, err)

	assert.True(t, f.Check("what the fuck"))
	assert.False(t, f.Check("what the duck"))
}

func TestAddRemove(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	f.Add("  Foo ", "")
	assert.Equal(t, []string{"foo"}, f.Words())
	assert.Equal(t, "***", f.Clean("FOO"))

	f.Remove("FOO")
	assert.Empty(t, f.Words())
	assert.Equal(t, "FOO", f.Clean("FOO"))
}

func TestNilFilterPassesThrough(t *testing.T) {
	var f *Filter
	assert.Equal(t, "bad", f.Clean("bad"))
	assert.False(t, f.Check("bad"))
}

func TestDictionaries(t *testing.T) {
	assert.ElementsMatch(t, []string{"en", "ru"}, Languages())

	words, err := Dictionary("RU")
	require.NoError(t, err)
	assert.Contains(t, words, "сука")

	_, err = New("xx")
	assert.Error(t, err)
}

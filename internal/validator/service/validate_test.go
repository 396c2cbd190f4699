package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/idea-validator/validator-api/internal/validator/domain"
)

func body(t require.TestingT, v any) []byte {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestParsePrompt_Table(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty body", ``, domain.ErrPromptRequired},
		{"whitespace body", "  \n", domain.ErrPromptRequired},
		{"missing field", `{}`, domain.ErrPromptRequired},
		{"null", `{"prompt": null}`, domain.ErrPromptRequired},
		{"empty string", `{"prompt": ""}`, domain.ErrPromptRequired},
		{"false", `{"prompt": false}`, domain.ErrPromptRequired},
		{"zero", `{"prompt": 0}`, domain.ErrPromptRequired},
		{"array body", `["prompt"]`, domain.ErrPromptRequired},
		{"number", `{"prompt": 42}`, domain.ErrPromptNotString},
		{"true", `{"prompt": true}`, domain.ErrPromptNotString},
		{"object", `{"prompt": {"text": "hello world!"}}`, domain.ErrPromptNotString},
		{"empty array", `{"prompt": []}`, domain.ErrPromptNotString},
		{"short", `{"prompt": "too short"}`, domain.ErrPromptTooShort},
		{"short after trim", `{"prompt": "   abc   \t\n      "}`, domain.ErrPromptTooShort},
		{"malformed", `{"prompt": `, domain.ErrInvalidBody},
		{"trailing data", `{"prompt": "a long enough prompt"} {}`, domain.ErrInvalidBody},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePrompt([]byte(tc.body))
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestParsePrompt_Boundaries(t *testing.T) {
	t.Run("exactly minimum", func(t *testing.T) {
		p, err := ParsePrompt(body(t, map[string]string{"prompt": "  0123456789  "}))
		require.NoError(t, err)
		assert.Equal(t, "  0123456789  ", p)
	})

	t.Run("exactly maximum", func(t *testing.T) {
		prompt := strings.Repeat("a", domain.MaxPromptLength)
		p, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		require.NoError(t, err)
		assert.Len(t, p, domain.MaxPromptLength)
	})

	t.Run("one over maximum", func(t *testing.T) {
		prompt := strings.Repeat("a", domain.MaxPromptLength+1)
		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.Equal(t, domain.ErrPromptTooLong, err)
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		prompt := strings.Repeat("漢", domain.MaxPromptLength)
		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.NoError(t, err)
	})

	t.Run("astral characters count as two", func(t *testing.T) {
		_, err := ParsePrompt(body(t, map[string]string{"prompt": strings.Repeat("🚀", 5)}))
		assert.NoError(t, err)

		_, err = ParsePrompt(body(t, map[string]string{"prompt": strings.Repeat("🚀", domain.MaxPromptLength/2)}))
		assert.NoError(t, err)

		_, err = ParsePrompt(body(t, map[string]string{"prompt": strings.Repeat("🚀", domain.MaxPromptLength/2+1)}))
		assert.Equal(t, domain.ErrPromptTooLong, err)
	})

	t.Run("trim strips browser whitespace", func(t *testing.T) {
		prompt := "\ufeff\ufeff\ufeff\ufeff\ufeff\u3000\u00a0\u2028short\u2029\u202f\u205f\u1680\u200a"
		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.Equal(t, domain.ErrPromptTooShort, err)
	})

	t.Run("trim keeps next line", func(t *testing.T) {
		prompt := "\u0085\u0085\u0085\u0085\u0085\u0085shor"
		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.NoError(t, err)
	})

	t.Run("too long wins over too short", func(t *testing.T) {
		prompt := strings.Repeat(" ", domain.MaxPromptLength+1)
		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.Equal(t, domain.ErrPromptTooLong, err)
	})
}

var (
	wordRunes  = []rune("abcdefXYZ0123456789.,!?éß漢字")
	spaceRunes = []rune(" \t\n\r")
)

func TestParsePrompt_AcceptsWellFormedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pad := rapid.StringOfN(rapid.RuneFrom(spaceRunes), 0, 8, -1)
		core := rapid.StringOfN(rapid.RuneFrom(wordRunes), domain.MinPromptLength, 300, -1).Draw(t, "core")
		prompt := pad.Draw(t, "left") + core + pad.Draw(t, "right")

		got, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		require.NoError(t, err)
		assert.Equal(t, prompt, got)
	})
}

func TestParsePrompt_RejectsShortProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pad := rapid.StringOfN(rapid.RuneFrom(spaceRunes), 0, 20, -1)
		core := rapid.StringOfN(rapid.RuneFrom(wordRunes), 1, domain.MinPromptLength-1, -1).Draw(t, "core")
		prompt := pad.Draw(t, "left") + core + pad.Draw(t, "right")

		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.Equal(t, domain.ErrPromptTooShort, err)
	})
}

func TestParsePrompt_RejectsTooLongProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		extra := rapid.IntRange(1, 500).Draw(t, "extra")
		r := rapid.SampledFrom(wordRunes).Draw(t, "rune")
		prompt := strings.Repeat(string(r), domain.MaxPromptLength+extra)

		_, err := ParsePrompt(body(t, map[string]string{"prompt": prompt}))
		assert.Equal(t, domain.ErrPromptTooLong, err)
	})
}

func TestParsePrompt_RejectsNonStringProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var value any
		switch rapid.IntRange(0, 3).Draw(t, "kind") {
		case 0:
			n := rapid.IntRange(1, 1_000_000).Draw(t, "n")
			if rapid.Bool().Draw(t, "negative") {
				n = -n
			}
			value = n
		case 1:
			value = true
		case 2:
			list := rapid.SliceOfN(rapid.String(), 0, 3).Draw(t, "list")
			value = append([]string{}, list...)
		default:
			value = map[string]string{"text": rapid.String().Draw(t, "text")}
		}

		_, err := ParsePrompt(body(t, map[string]any{"prompt": value}))
		assert.Equal(t, domain.ErrPromptNotString, err)
	})
}

func TestReadBody(t *testing.T) {
	b, err := readBody(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(b))

	_, err = readBody(strings.NewReader("123456"), 5)
	assert.Equal(t, domain.ErrBodyTooLarge, err)

	b, err = readBody(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, b)
}

package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/idea-validator/validator-api/internal/validator/domain"
)

// readBody reads at most limit bytes. A body longer than limit yields ErrBodyTooLarge.
func readBody(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, domain.ErrInvalidBody
	}
	if int64(len(body)) > limit {
		return nil, domain.ErrBodyTooLarge
	}
	return body, nil
}

// ParsePrompt extracts and checks the prompt field of a validate request body.
// Checks run in a fixed order and the first failure is returned as a *domain.RequestError.
func ParsePrompt(body []byte) (string, error) {
	raw, err := promptField(body)
	if err != nil {
		return "", err
	}

	if isEmptyValue(raw) {
		return "", domain.ErrPromptRequired
	}

	prompt, ok := raw.(string)
	if !ok {
		return "", domain.ErrPromptNotString
	}

	if textLength(prompt) > domain.MaxPromptLength {
		return "", domain.ErrPromptTooLong
	}

	if textLength(strings.TrimFunc(prompt, isTrimSpace)) < domain.MinPromptLength {
		return "", domain.ErrPromptTooShort
	}

	return prompt, nil
}

// promptField returns the decoded "prompt" member, or nil when the body is empty
// or is valid JSON that is not an object.
func promptField(body []byte) (any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, domain.ErrInvalidBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, domain.ErrInvalidBody
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	return obj["prompt"], nil
}

// isEmptyValue matches values a browser client treats as "no prompt": absent, null,
// empty string, false and zero.
func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	}
	return false
}

// textLength counts UTF-16 code units, the unit browsers use for string length,
// so limits agree with what the UI reports.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// isTrimSpace matches the whitespace and line terminators a browser strips on trim.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

package model

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain name", "Ursula Le Guin", true},
		{"256 runes", strings.Repeat("ё", 256), true},
		{"257 runes", strings.Repeat("a", 257), false},
		{"256 combining-mark graphemes", strings.Repeat("e\u0301", 256), true},
		{"257 combining-mark graphemes", strings.Repeat("e\u0301", 257), false},
		{"invalid utf-8", "le guin\xff\xfe", false},
		{"lone continuation byte", "\x80", false},
		{"empty", "", false},
		{"whitespace only", " \t ", false},
		{"control character", "ursula\x00", false},
		{"newline", "ursula\nle guin", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSubscriberName(tc.input)
			if tc.valid {
				require.NoError(t, err)
				assert.Equal(t, tc.input, got.String())
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "name", verr.Field)
			assert.Equal(t, tc.input, verr.Input)
		})
	}
}

func TestParseSubscriberName_ForbiddenCharacters(t *testing.T) {
	for _, c := range forbiddenNameChars {
		input := "ursula" + string(c)
		_, err := ParseSubscriberName(input)
		assert.Error(t, err, "expected %q to be rejected", input)
	}
}

func TestValidationError_OmitsInput(t *testing.T) {
	_, err := ParseSubscriberName("secret<script>")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}

// validName draws names from a safe alphabet so every value should parse.
type validName string

func (validName) Generate(r *rand.Rand, size int) reflect.Value {
	const alphabet = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ-'.çé"
	runes := []rune(alphabet)
	n := 1 + r.Intn(MaxNameLength-1)
	var b strings.Builder
	b.WriteRune('a')
	for i := 1; i < n; i++ {
		b.WriteRune(runes[r.Intn(len(runes))])
	}
	return reflect.ValueOf(validName(b.String()))
}

func TestParseSubscriberName_AcceptsSafeNames(t *testing.T) {
	accepts := func(n validName) bool {
		_, err := ParseSubscriberName(string(n))
		return err == nil
	}
	require.NoError(t, quick.Check(accepts, nil))
}

func TestParseSubscriberName_RejectsAnyForbiddenCharacter(t *testing.T) {
	rejects := func(n validName, pos uint8, pick uint8) bool {
		runes := []rune(string(n))
		forbidden := []rune(forbiddenNameChars)
		i := int(pos) % (len(runes) + 1)
		c := forbidden[int(pick)%len(forbidden)]
		tainted := string(runes[:i]) + string(c) + string(runes[i:])
		_, err := ParseSubscriberName(tainted)
		return err != nil
	}
	require.NoError(t, quick.Check(rejects, nil))
}

func TestParseSubscriberName_IsDeterministic(t *testing.T) {
	sameVerdict := func(s string) bool {
		_, first := ParseSubscriberName(s)
		_, second := ParseSubscriberName(s)
		return (first == nil) == (second == nil)
	}
	require.NoError(t, quick.Check(sameVerdict, nil))
}

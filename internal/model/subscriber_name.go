package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rivo/uniseg"
)

// MaxNameLength is the longest name, in grapheme clusters, a subscriber may
// submit.
const MaxNameLength = 256

// forbiddenNameChars are rejected anywhere in a name.
const forbiddenNameChars = `/()"<>\{}`

var nameRules = []validation.Rule{
	validation.Required,
	validation.By(validUTF8),
	validation.By(notBlank),
	validation.By(maxGraphemes),
	validation.By(noForbiddenChars),
}

// SubscriberName is a name that passed ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw and wraps it in a SubscriberName.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if err := validation.Validate(raw, nameRules...); err != nil {
		return SubscriberName{}, &ValidationError{Field: "name", Input: raw, Reason: err.Error()}
	}
	return SubscriberName{value: raw}, nil
}

func (n SubscriberName) String() string {
	return n.value
}

func validUTF8(value interface{}) error {
	s, _ := value.(string)
	if !utf8.ValidString(s) {
		return errors.New("must be valid UTF-8")
	}
	return nil
}

// maxGraphemes counts user-perceived characters, so "e" followed by a
// combining accent is one unit.
func maxGraphemes(value interface{}) error {
	s, _ := value.(string)
	if uniseg.GraphemeClusterCount(s) > MaxNameLength {
		return fmt.Errorf("must be at most %d characters", MaxNameLength)
	}
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

func noForbiddenChars(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, forbiddenNameChars) {
		return errors.New("contains a forbidden character")
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return errors.New("contains a control character")
	}
	return nil
}

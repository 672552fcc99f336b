package dto

import (
	"errors"
	"net/http"
)

// MaxFormBytes caps the size of a form body.
const MaxFormBytes = 16 << 10

// ErrMissingField is returned when a required form key is absent.
var ErrMissingField = errors.New("missing form field")

// SubscribeForm is the application/x-www-form-urlencoded body of
// POST /subscriptions. Field contents are validated by the model package.
type SubscribeForm struct {
	Name  string
	Email string
}

// DecodeSubscribeForm reads the form body of r. Both keys must be present;
// their contents are checked later.
func DecodeSubscribeForm(w http.ResponseWriter, r *http.Request) (SubscribeForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		return SubscribeForm{}, err
	}
	for _, key := range []string{"name", "email"} {
		if _, ok := r.PostForm[key]; !ok {
			return SubscribeForm{}, ErrMissingField
		}
	}
	return SubscribeForm{
		Name:  r.PostForm.Get("name"),
		Email: r.PostForm.Get("email"),
	}, nil
}

package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

const redacted = "[REDACTED]"

// Secret holds a credential. Every string form of it is redacted; the only
// way to read the value is Expose.
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the wrapped value. Call it only where the value is handed
// straight to a driver.
func (s Secret) Expose() string {
	return s.value
}

// IsZero reports whether no value is set.
func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return redacted
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(redacted)
}

func (s Secret) MarshalYAML() (interface{}, error) {
	return redacted, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Secret) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.value)
}

// Decode implements envconfig.Decoder.
func (s *Secret) Decode(value string) error {
	s.value = value
	return nil
}

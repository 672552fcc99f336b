package config

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretSource resolves a named secret to its current value.
type SecretSource interface {
	AccessSecret(ctx context.Context, name string) (Secret, error)
}

type secretManagerSource struct {
	client *secretmanager.Client
}

// NewSecretManagerSource returns a SecretSource backed by Google Cloud Secret
// Manager. The returned close func releases the client.
func NewSecretManagerSource(ctx context.Context, opts ...option.ClientOption) (SecretSource, func() error, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &secretManagerSource{client: client}, client.Close, nil
}

// AccessSecret reads a secret version. name is a full resource name such as
// projects/p/secrets/db-password/versions/latest.
func (s *secretManagerSource) AccessSecret(ctx context.Context, name string) (Secret, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return Secret{}, fmt.Errorf("failed to access secret version %s: %w", name, err)
	}
	return NewSecret(string(result.Payload.Data)), nil
}

// ResolvePassword replaces d.Password with the value stored under
// d.PasswordSecretName. It is a no-op when no secret name is configured.
func ResolvePassword(ctx context.Context, d *DatabaseSettings, src SecretSource) error {
	if d.PasswordSecretName == "" {
		return nil
	}
	password, err := src.AccessSecret(ctx, d.PasswordSecretName)
	if err != nil {
		return err
	}
	if password.IsZero() {
		return fmt.Errorf("secret %s is empty", d.PasswordSecretName)
	}
	d.Password = password
	return nil
}

// ResolvePasswordFromSecretManager runs ResolvePassword against Secret
// Manager, opening a client only when a secret name is configured.
func ResolvePasswordFromSecretManager(ctx context.Context, d *DatabaseSettings, opts ...option.ClientOption) error {
	if d.PasswordSecretName == "" {
		return nil
	}
	src, closeClient, err := NewSecretManagerSource(ctx, opts...)
	if err != nil {
		return err
	}
	defer closeClient()
	return ResolvePassword(ctx, d, src)
}

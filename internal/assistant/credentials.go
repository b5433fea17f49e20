package assistant

import "github.com/zalando/go-keyring"

// Credentials stores passwords for authenticated vCard imports.
// Passwords are keyed by user name and never logged.
type Credentials interface {
	Get(user string) (string, error)
	Set(user, pass string) error
}

// KeyringCredentials keeps passwords in the OS keyring (Keychain, Secret
// Service or Windows Credential Manager) under Service.
type KeyringCredentials struct {
	Service string
}

// Get returns the password stored for user.
// keyring.ErrNotFound is returned when login was never called for user.
func (k KeyringCredentials) Get(user string) (string, error) {
	return keyring.Get(k.Service, user)
}

// Set stores or replaces the password of user.
func (k KeyringCredentials) Set(user, pass string) error {
	return keyring.Set(k.Service, user, pass)
}

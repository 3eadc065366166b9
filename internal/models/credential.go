package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mvx/internal/shared"
)

// ReservedCredentialChars cannot appear in a username or password because the credentials file uses them as syntax.
const ReservedCredentialChars = ":\"'\r\n"

// ReservedUsernameChars adds path separators, since usernames also name export files.
const ReservedUsernameChars = ReservedCredentialChars + "/\\"

// Credential is a username and the password value stored for it.
type Credential struct {
	username string
	password string
}

// NewCredential builds a validated [Credential].
func NewCredential(username, password string) (*Credential, error) {
	c := &Credential{username: username, password: password}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Credential) Key() string      { return c.username }
func (c *Credential) Username() string { return c.username }
func (c *Credential) Password() string { return c.password }

// Validate rejects empty values, usernames containing [ReservedUsernameChars] and passwords containing
// [ReservedCredentialChars].
func (c *Credential) Validate() error {
	if strings.TrimSpace(c.username) == "" {
		return fmt.Errorf("%w: username must not be empty", shared.ErrInvalidInput)
	}
	if c.password == "" {
		return fmt.Errorf("%w: password must not be empty", shared.ErrInvalidInput)
	}
	if strings.ContainsAny(c.username, ReservedUsernameChars) {
		return fmt.Errorf("%w: username cannot contain : \" ' / \\", shared.ErrInvalidInput)
	}
	if strings.ContainsAny(c.password, ReservedCredentialChars) {
		return fmt.Errorf("%w: password cannot contain : \" '", shared.ErrInvalidInput)
	}
	return nil
}

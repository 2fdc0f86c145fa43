package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/tartampluch/go-contacts/internal/config"
)

// ErrValidation marks a rejected form: a required field resolved to empty.
// Callers are expected to validate before mutating the book; the book itself
// does not re-validate.
var ErrValidation = errors.New(config.ErrFieldRequired)

// Contact is one person's record. ID and CreatedAt are fixed at creation and
// survive persistence round-trips unchanged.
type Contact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	UserName  string    `json:"userName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// FormData carries user input for add and update operations.
// All fields must already be trimmed of surrounding whitespace.
type FormData struct {
	FirstName string
	LastName  string
	UserName  string
	Phone     string
	Email     string
	Address   string
}

// Validate checks the required fields (first name, last name, username,
// phone). Optional fields (email, address) are never validated.
func Validate(data FormData) error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", data.FirstName},
		{"lastName", data.LastName},
		{"userName", data.UserName},
		{"phone", data.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrValidation, f.name)
		}
	}
	return nil
}

// NewContact constructs a record with a fresh random 128-bit identifier.
// The creation time comes from the caller so it can be mocked in tests.
func NewContact(data FormData, now time.Time) Contact {
	return Contact{
		ID:        uuid.NewString(),
		FirstName: data.FirstName,
		LastName:  data.LastName,
		UserName:  data.UserName,
		Phone:     data.Phone,
		Email:     data.Email,
		Address:   data.Address,
		CreatedAt: now,
	}
}

// FullName returns "FirstName LastName".
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Initials returns the uppercased first rune of each name part.
// An empty name part contributes nothing.
func (c Contact) Initials() string {
	var b strings.Builder
	for _, name := range []string{c.FirstName, c.LastName} {
		for _, r := range name {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// merge applies the update semantics: an incoming non-empty value replaces
// the stored one, an empty value leaves it untouched. An update can therefore
// never clear a field. ID and CreatedAt are never touched.
func (c *Contact) merge(data FormData) {
	fields := []struct {
		dst *string
		src string
	}{
		{&c.FirstName, data.FirstName},
		{&c.LastName, data.LastName},
		{&c.UserName, data.UserName},
		{&c.Phone, data.Phone},
		{&c.Email, data.Email},
		{&c.Address, data.Address},
	}
	for _, f := range fields {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

// matches reports whether the contact matches a search query.
// The query must already be lowercased by the caller; phone is compared
// against the raw query since phone numbers carry no case.
func (c Contact) matches(lowered, raw string) bool {
	return strings.Contains(strings.ToLower(c.FirstName), lowered) ||
		strings.Contains(strings.ToLower(c.LastName), lowered) ||
		strings.Contains(strings.ToLower(c.UserName), lowered) ||
		strings.Contains(c.Phone, raw) ||
		(c.Email != "" && strings.Contains(strings.ToLower(c.Email), lowered))
}

package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidEmail is returned when a candidate address fails validation
var ErrInvalidEmail = errors.New("invalid email address")

// ErrDuplicateEmail is returned when an address is already in the set
var ErrDuplicateEmail = errors.New("duplicate email address")

// emailPattern is intentionally permissive: local@domain.tld shaped, no
// whitespace, at least one dot after the @. Not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// tokenSeparator splits free-form recipient input on runs of commas,
// semicolons, whitespace and newlines.
var tokenSeparator = regexp.MustCompile(`[,;\s]+`)

// RecipientSet holds an ordered, duplicate-free list of validated email
// addresses. Entries are stored trimmed and lowercased, in insertion order.
type RecipientSet struct {
	emails []string
}

func NewRecipientSet() *RecipientSet {
	return &RecipientSet{}
}

// FromStrings builds a RecipientSet from already-collected values (e.g. a
// JSON array). Invalid entries fail the whole call; duplicates are dropped
// silently since the set semantics already hold.
func FromStrings(values []string) (*RecipientSet, error) {
	s := NewRecipientSet()
	for _, v := range values {
		if err := s.Add(v); err != nil && !errors.Is(err, ErrDuplicateEmail) {
			return nil, err
		}
	}
	return s, nil
}

// ValidEmail reports whether candidate looks like an email address after
// trimming surrounding whitespace.
func ValidEmail(candidate string) bool {
	return emailPattern.MatchString(strings.TrimSpace(candidate))
}

// Add trims and lowercases candidate, then appends it to the set.
// Invalid or duplicate addresses are rejected without mutating the set.
func (s *RecipientSet) Add(candidate string) error {
	email := strings.ToLower(strings.TrimSpace(candidate))
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	for _, existing := range s.emails {
		if existing == email {
			return fmt.Errorf("%w: %q", ErrDuplicateEmail, email)
		}
	}
	s.emails = append(s.emails, email)
	return nil
}

// Remove deletes the exact (trimmed, lowercased) address from the set.
// Removing an absent address is a no-op.
func (s *RecipientSet) Remove(email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i, existing := range s.emails {
		if existing == email {
			s.emails = append(s.emails[:i], s.emails[i+1:]...)
			return
		}
	}
}

// AddMany splits blob on commas, semicolons and whitespace and feeds each
// token through Add independently. Valid tokens are added even when others
// are rejected; rejected tokens are reported back to the caller.
func (s *RecipientSet) AddMany(blob string) (added, rejected []string) {
	for _, token := range tokenSeparator.Split(blob, -1) {
		if token == "" {
			continue
		}
		if err := s.Add(token); err != nil {
			rejected = append(rejected, token)
			continue
		}
		added = append(added, strings.ToLower(strings.TrimSpace(token)))
	}
	return added, rejected
}

// Emails returns a copy of the set in insertion order.
func (s *RecipientSet) Emails() []string {
	out := make([]string, len(s.emails))
	copy(out, s.emails)
	return out
}

func (s *RecipientSet) Len() int {
	return len(s.emails)
}

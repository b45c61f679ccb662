// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"crypto/rand"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Email Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Email represents a normalized email address. The same normalization is
// applied everywhere (registration, lookup, duplicate checks) so uniqueness
// is enforced on one canonical form.
type Email string

// Pragmatic email shape check; full RFC validation is not the store's job.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewEmail trims, lowercases and validates an email address.
func NewEmail(raw string) (Email, error) {
	e := Email(strings.ToLower(strings.TrimSpace(raw)))
	if !e.IsValid() {
		return "", NewDomainError("shared", "NewEmail", ErrValidation, "invalid email address")
	}
	return e, nil
}

// IsValid checks the email shape.
func (e Email) IsValid() bool {
	return emailRegex.MatchString(string(e))
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// NormalizeEmail returns the canonical form without validating.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ═══════════════════════════════════════════════════════════════════════════
// Enrollment Code Value Object
// ═══════════════════════════════════════════════════════════════════════════

// EnrollmentCode is the short token a course exposes for self-service joins.
// Codes are fixed-length alphanumeric and unique across all courses; the
// catalog collision-checks a candidate before assigning it.
type EnrollmentCode string

// EnrollmentCodeLength is the fixed code length.
const EnrollmentCodeLength = 6

const enrollmentCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IsValid checks length and alphabet.
func (c EnrollmentCode) IsValid() bool {
	if len(c) != EnrollmentCodeLength {
		return false
	}
	for _, r := range string(c) {
		if !strings.ContainsRune(enrollmentCodeAlphabet, r) {
			return false
		}
	}
	return true
}

// String returns the string representation.
func (c EnrollmentCode) String() string {
	return string(c)
}

// NormalizeEnrollmentCode uppercases and trims a user-entered code.
func NormalizeEnrollmentCode(raw string) EnrollmentCode {
	return EnrollmentCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// GenerateEnrollmentCode produces a random candidate code. The caller is
// responsible for the uniqueness check against existing courses.
func GenerateEnrollmentCode() (EnrollmentCode, error) {
	buf := make([]byte, EnrollmentCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", WrapError("shared", "GenerateEnrollmentCode", ErrExternalService, "random source failed", err)
	}
	for i, b := range buf {
		buf[i] = enrollmentCodeAlphabet[int(b)%len(enrollmentCodeAlphabet)]
	}
	return EnrollmentCode(buf), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Credits Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Credits represents course credit hours, the GPA weight of a course.
type Credits int

// Credit hour boundaries.
const (
	MinCredits Credits = 1
	MaxCredits Credits = 10
)

// IsValid checks the credit range.
func (c Credits) IsValid() bool {
	return c >= MinCredits && c <= MaxCredits
}

// Int returns the underlying int value.
func (c Credits) Int() int {
	return int(c)
}

// ═══════════════════════════════════════════════════════════════════════════
// Percent Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Percent represents a 0-100 percentage (assessment weights, scores).
type Percent float64

// IsValid checks the 0-100 range.
func (p Percent) IsValid() bool {
	return p >= 0 && p <= 100
}

// Float64 returns the underlying float64 value.
func (p Percent) Float64() float64 {
	return float64(p)
}

// Package validate implements the record validation rules applied before
// any entity reaches the store. Validation is pre-flight: a failure
// short-circuits the triggering operation before any write occurs, and only
// the first violated rule is reported.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"society-backend-go/internal/models"
)

var (
	flatNumberRegex    = regexp.MustCompile(`^[A-Z]-\d{3}$`)
	emailRegex         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex         = regexp.MustCompile(`^\d{10}$`)
	aadharRegex        = regexp.MustCompile(`^\d{12}$`)
	panRegex           = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	vehicleNumberRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{1,4}$`)
)

// RuleError reports the first validation rule violated by a payload.
type RuleError struct {
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// FlatNumber checks the two-part unit number pattern, e.g. "A-101".
// Lowercase input is rejected, not normalized.
func FlatNumber(number string) error {
	if !flatNumberRegex.MatchString(number) {
		return &RuleError{Field: "flatNumber", Message: "must match format like A-101"}
	}
	return nil
}

// Email checks the standard local@domain.tld shape.
func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return &RuleError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

// Phone checks for exactly 10 digits.
func Phone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return &RuleError{Field: "phone", Message: "must be exactly 10 digits"}
	}
	return nil
}

// Aadhar checks the 12-digit national id number. Empty input is allowed.
func Aadhar(aadhar string) error {
	if aadhar == "" {
		return nil
	}
	if !aadharRegex.MatchString(aadhar) {
		return &RuleError{Field: "documents.aadhar", Message: "must be exactly 12 digits"}
	}
	return nil
}

// PAN normalizes the tax id number to uppercase and checks the
// 5-letters + 4-digits + 1-letter shape. Empty input is allowed and
// returned as-is.
func PAN(pan string) (string, error) {
	if pan == "" {
		return "", nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(pan))
	if !panRegex.MatchString(normalized) {
		return "", &RuleError{Field: "documents.pan", Message: "must match format like ABCDE1234F"}
	}
	return normalized, nil
}

// FamilyDetails checks that every count in the family sub-record is
// non-negative. A nil sub-record is valid; absent counts default to zero.
func FamilyDetails(fd *models.FamilyDetails) error {
	if fd == nil {
		return nil
	}
	counts := []struct {
		field string
		value int
	}{
		{"familyDetails.totalMembers", fd.TotalMembers},
		{"familyDetails.adults", fd.Adults},
		{"familyDetails.children", fd.Children},
		{"familyDetails.males", fd.Males},
		{"familyDetails.females", fd.Females},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &RuleError{Field: c.field, Message: "must not be negative"}
		}
	}
	return nil
}

// FormatVehicleNumber uppercases a plate number and strips all whitespace.
func FormatVehicleNumber(number string) string {
	return strings.ToUpper(strings.Join(strings.Fields(number), ""))
}

// VehicleNumber formats a plate number and checks it against the
// 2-letters + 1-2 digits + 1-2 letters + 1-4 digits pattern.
// The formatted value is returned even when invalid, matching the
// validation endpoint contract.
func VehicleNumber(number string) (string, error) {
	formatted := FormatVehicleNumber(number)
	if !vehicleNumberRegex.MatchString(formatted) {
		return formatted, &RuleError{Field: "vehicleNumber", Message: "must match format like MH12AB1234"}
	}
	return formatted, nil
}

// OwnerPayload applies the owner field rules in order and reports the first
// violation. The payload's PAN is normalized in place on success.
func OwnerPayload(p *models.OwnerPayload) error {
	if strings.TrimSpace(p.Name) == "" {
		return &RuleError{Field: "name", Message: "is required"}
	}
	if err := Email(p.Email); err != nil {
		return err
	}
	if err := Phone(p.Phone); err != nil {
		return err
	}
	if err := FamilyDetails(p.FamilyDetails); err != nil {
		return err
	}
	if p.Documents != nil {
		if err := Aadhar(p.Documents.Aadhar); err != nil {
			return err
		}
		pan, err := PAN(p.Documents.PAN)
		if err != nil {
			return err
		}
		p.Documents.PAN = pan
	}
	return nil
}

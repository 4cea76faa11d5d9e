package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-backend-go/internal/models"
)

func TestFlatNumber(t *testing.T) {
	assert.NoError(t, FlatNumber("A-101"))
	assert.NoError(t, FlatNumber("Z-999"))

	assert.Error(t, FlatNumber("A101"))
	assert.Error(t, FlatNumber("a-101"))
	assert.Error(t, FlatNumber("AB-101"))
	assert.Error(t, FlatNumber("A-1011"))
	assert.Error(t, FlatNumber(""))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("a@x.com"))
	assert.NoError(t, Email("first.last@sub.example.co.in"))

	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("a@b"))
	assert.Error(t, Email("a b@x.com"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("9876543210"))

	assert.Error(t, Phone("123"))
	assert.Error(t, Phone("98765432101"))
	assert.Error(t, Phone("98765abc10"))
}

func TestAadhar(t *testing.T) {
	assert.NoError(t, Aadhar(""), "aadhar is optional")
	assert.NoError(t, Aadhar("123456789012"))

	assert.Error(t, Aadhar("12345678901"))
	assert.Error(t, Aadhar("1234567890123"))
}

func TestPAN(t *testing.T) {
	got, err := PAN("abcde1234f")
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", got, "input is normalized to uppercase")

	got, err = PAN("")
	require.NoError(t, err, "pan is optional")
	assert.Empty(t, got)

	_, err = PAN("ABC1234567")
	assert.Error(t, err)
}

func TestFamilyDetails(t *testing.T) {
	assert.NoError(t, FamilyDetails(nil))
	assert.NoError(t, FamilyDetails(&models.FamilyDetails{Adults: 1}), "a single adult with no other members is valid")
	assert.NoError(t, FamilyDetails(&models.FamilyDetails{}), "zero counts are allowed")

	err := FamilyDetails(&models.FamilyDetails{Adults: 2, Children: -1})
	require.Error(t, err)
	var ruleErr *RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "familyDetails.children", ruleErr.Field)
}

func TestVehicleNumber(t *testing.T) {
	formatted, err := VehicleNumber("mh12ab1234")
	require.NoError(t, err)
	assert.Equal(t, "MH12AB1234", formatted)

	formatted, err = VehicleNumber(" gj 01 ab 1234 ")
	require.NoError(t, err)
	assert.Equal(t, "GJ01AB1234", formatted)

	formatted, err = VehicleNumber("AB")
	assert.Error(t, err)
	assert.Equal(t, "AB", formatted, "formatted value is returned even when invalid")

	_, err = VehicleNumber("1234AB12")
	assert.Error(t, err)
}

func TestOwnerPayloadFirstViolationWins(t *testing.T) {
	p := &models.OwnerPayload{
		Name:  "Asha",
		Email: "not-an-email",
		Phone: "123",
	}
	err := OwnerPayload(p)
	require.Error(t, err)

	var ruleErr *RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "email", ruleErr.Field, "only the first violated rule is reported")
}

func TestOwnerPayloadNormalizesPAN(t *testing.T) {
	p := &models.OwnerPayload{
		Name:      "Asha",
		Email:     "a@x.com",
		Phone:     "9876543210",
		Documents: &models.OwnerDocuments{Aadhar: "123456789012", PAN: "abcde1234f"},
	}
	require.NoError(t, OwnerPayload(p))
	assert.Equal(t, "ABCDE1234F", p.Documents.PAN)
}

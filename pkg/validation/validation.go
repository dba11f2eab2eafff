// Package validation holds the field-level business rules checked before an
// animal or owner record is persisted. The checks are pure: no database access,
// uniqueness against existing records is the caller's job.
package validation

import (
	"regexp"
	"strings"

	"animal-shelter/pkg/models"
)

// Rule codes carried by failed validations.
const (
	CodeNameRequired       = "NAME_REQUIRED"
	CodeBreedRequired      = "BREED_REQUIRED"
	CodeNegativeAge        = "NEGATIVE_AGE"
	CodeNonPositiveWeight  = "NON_POSITIVE_WEIGHT"
	CodeInvalidSize        = "INVALID_SIZE"
	CodeFirstNameRequired  = "FIRST_NAME_REQUIRED"
	CodeLastNameRequired   = "LAST_NAME_REQUIRED"
	CodeEmailRequired      = "EMAIL_REQUIRED"
	CodePhoneRequired      = "PHONE_REQUIRED"
	CodeAddressRequired    = "ADDRESS_REQUIRED"
	CodeCityRequired       = "CITY_REQUIRED"
	CodePostalCodeRequired = "POSTAL_CODE_REQUIRED"
	CodeUnderage           = "UNDERAGE"
	CodeAgeTooHigh         = "AGE_TOO_HIGH"
	CodeInvalidEmail       = "INVALID_EMAIL_FORMAT"
	CodeInvalidPhone       = "INVALID_PHONE_FORMAT"
	CodeInvalidPostalCode  = "INVALID_POSTAL_CODE"

	CodeAnimalNotFound  = "ANIMAL_NOT_FOUND"
	CodeOwnerNotFound   = "OWNER_NOT_FOUND"
	CodeOwnerHasAnimals = "OWNER_HAS_ANIMALS"
	CodeDuplicateName   = "DUPLICATE_NAME"
	CodeDuplicateEmail  = "DUPLICATE_EMAIL"
	CodeDuplicatePhone  = "DUPLICATE_PHONE"
)

// RuleError is a rejected operation: a violated rule code plus a message for
// the API response. It is never a transient fault.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func newRuleError(code, message string) *RuleError {
	return &RuleError{Code: code, Message: message}
}

var (
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern      = regexp.MustCompile(`^[+]?[0-9]{8,15}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// ValidateAnimal checks an animal record rule by rule; the first violated rule
// wins. Name uniqueness is checked by the service layer against the repository.
func ValidateAnimal(a *models.Animal) error {
	if strings.TrimSpace(a.Name) == "" {
		return newRuleError(CodeNameRequired, "animal name is required")
	}
	if strings.TrimSpace(a.Breed) == "" {
		return newRuleError(CodeBreedRequired, "animal breed is required")
	}
	if a.Age != nil && *a.Age < 0 {
		return newRuleError(CodeNegativeAge, "animal age cannot be negative")
	}
	if a.Weight != nil && *a.Weight <= 0 {
		return newRuleError(CodeNonPositiveWeight, "animal weight must be greater than 0")
	}
	if a.Size != "" && a.Size != models.SizeSmall && a.Size != models.SizeMedium && a.Size != models.SizeLarge {
		return newRuleError(CodeInvalidSize, "animal size must be SMALL, MEDIUM or LARGE")
	}
	return nil
}

// ValidateOwner checks an owner record in fixed rule order: required fields
// first, then age bounds, then format rules. The age rules run regardless of
// whether the phone or email would later fail their format checks.
func ValidateOwner(o *models.Owner) error {
	if strings.TrimSpace(o.FirstName) == "" {
		return newRuleError(CodeFirstNameRequired, "owner first name is required")
	}
	if strings.TrimSpace(o.LastName) == "" {
		return newRuleError(CodeLastNameRequired, "owner last name is required")
	}
	if strings.TrimSpace(o.Email) == "" {
		return newRuleError(CodeEmailRequired, "owner email is required")
	}
	if strings.TrimSpace(o.Phone) == "" {
		return newRuleError(CodePhoneRequired, "owner phone is required")
	}
	if strings.TrimSpace(o.Address) == "" {
		return newRuleError(CodeAddressRequired, "owner address is required")
	}
	if strings.TrimSpace(o.City) == "" {
		return newRuleError(CodeCityRequired, "owner city is required")
	}
	if strings.TrimSpace(o.PostalCode) == "" {
		return newRuleError(CodePostalCodeRequired, "owner postal code is required")
	}
	if o.Age != nil && *o.Age < 18 {
		return newRuleError(CodeUnderage, "owner must be of legal age")
	}
	if o.Age != nil && *o.Age > 120 {
		return newRuleError(CodeAgeTooHigh, "owner age cannot be greater than 120")
	}
	if !emailPattern.MatchString(o.Email) {
		return newRuleError(CodeInvalidEmail, "owner email format is not valid")
	}
	if !phonePattern.MatchString(o.Phone) {
		return newRuleError(CodeInvalidPhone, "owner phone must be 8 to 15 digits")
	}
	if !postalCodePattern.MatchString(o.PostalCode) {
		return newRuleError(CodeInvalidPostalCode, "owner postal code must be 5 digits")
	}
	return nil
}

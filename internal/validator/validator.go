package validator

import (
	"regexp"
	"slices"
	"strings"
)

var (
	// EmailRX to check
	EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

// Validator collects field errors for request payloads and query params
type Validator struct {
	Errors map[string]string
}

// New creates an empty validator struct
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if we have any error entries in the Validator struct
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error msg if it doesnt already exist
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error msg to the map if a validation check is not ok
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// NotBlank returns true if value has anything other than whitespace in it
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxChars returns true if value is at most n bytes long
func MaxChars(value string, n int) bool {
	return len(value) <= n
}

// PermittedValue is a generic func which returns true if a specific value
// is in a list of permitted values
func PermittedValue[T comparable](value T, permittedValues ...T) bool {
	return slices.Contains(permittedValues, value)
}

// Matches returns true if a string value matches a specific regexp pattern
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

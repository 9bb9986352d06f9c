package models

import (
	"regexp"
	"strings"
)

// rutPattern matches a normalized RUT: 7-8 digits, a dash, and a verifier
// digit or K.
var rutPattern = regexp.MustCompile(`^\d{7,8}-[0-9Kk]$`)

// NormalizeRUT strips dots and whitespace and uppercases the verifier, so
// "12.345.678-k" and "12345678-K" compare equal. Uniqueness and format checks
// always run against the normalized form.
func NormalizeRUT(rut string) string {
	replacer := strings.NewReplacer(".", "", " ", "", "\t", "", "\n", "", "\r", "")
	return strings.ToUpper(replacer.Replace(rut))
}

// ValidRUT reports whether a normalized RUT has the expected shape.
func ValidRUT(rut string) bool {
	return rutPattern.MatchString(rut)
}

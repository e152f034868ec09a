package validation

import "regexp"

// Validation rule patterns
var (
	// DNIPattern - national identity number, 8 to 10 digits
	DNIPattern = `^\d{8,10}$`

	// PhonePattern - guardian phone numbers, 10 to 15 digits
	PhonePattern = `^\d{10,15}$`

	// EmailPattern - basic local@domain.tld check
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	DNI   *regexp.Regexp
	Phone *regexp.Regexp
	Email *regexp.Regexp
}{
	DNI:   regexp.MustCompile(DNIPattern),
	Phone: regexp.MustCompile(PhonePattern),
	Email: regexp.MustCompile(EmailPattern),
}

// ValidDNI reports whether the value is an 8-10 digit identity number.
func ValidDNI(value string) bool {
	return CompiledPatterns.DNI.MatchString(value)
}

// ValidPhone reports whether the value is a 10-15 digit phone number.
func ValidPhone(value string) bool {
	return CompiledPatterns.Phone.MatchString(value)
}

// ValidEmail reports whether the value looks like local@domain.tld.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

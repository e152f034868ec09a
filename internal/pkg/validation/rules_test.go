package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDNI(t *testing.T) {
	assert.True(t, ValidDNI("12345678"))
	assert.True(t, ValidDNI("1234567890"))
	assert.False(t, ValidDNI("1234567"), "7 digits is too short")
	assert.False(t, ValidDNI("12345678901"), "11 digits is too long")
	assert.False(t, ValidDNI("12345abc"))
	assert.False(t, ValidDNI(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("1134567890"))
	assert.True(t, ValidPhone("541134567890123"))
	assert.False(t, ValidPhone("123456789"), "9 digits is too short")
	assert.False(t, ValidPhone("1234567890123456"), "16 digits is too long")
	assert.False(t, ValidPhone("+541134567890"), "plus sign not allowed")
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("padre@example.com"))
	assert.True(t, ValidEmail("madre.lopez+liga@mail.com.ar"))
	assert.False(t, ValidEmail("sin-arroba"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail(""))
}

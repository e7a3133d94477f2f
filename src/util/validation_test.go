package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane.doe+money@example.co.uk"))
	assert.False(t, ValidateEmail("jane"))
	assert.False(t, ValidateEmail("jane@example"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("jane"))
	assert.False(t, ValidateUsername("jd"))
	assert.False(t, ValidateUsername("this-username-is-way-too-long-to-accept"))
	assert.False(t, ValidateUsername("jane doe"))
	assert.False(t, ValidateUsername("jane@home"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Sup3r$ecret"))
	assert.False(t, ValidatePassword("Sh0rt!"))
	assert.False(t, ValidatePassword("alllowercase1!"))
	assert.False(t, ValidatePassword("ALLUPPERCASE1!"))
	assert.False(t, ValidatePassword("NoDigitsHere!"))
	assert.False(t, ValidatePassword("NoSymbols123"))
}

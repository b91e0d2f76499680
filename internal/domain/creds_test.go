package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "simple address", raw: "johndoe@mail.com", wantErr: false},
		{name: "subdomain", raw: "a.b@sub.example.co.uk", wantErr: false},
		{name: "plus tag", raw: "user+tag@example.com", wantErr: false},
		{name: "missing at", raw: "johndoe.mail.com", wantErr: true},
		{name: "missing local part", raw: "@mail.com", wantErr: true},
		{name: "missing domain dot", raw: "johndoe@mail", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "spaces", raw: "john doe@mail.com", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := ParseEmail(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmailInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, email.String())
		})
	}
}

func TestParseEmail_RoundTrip(t *testing.T) {
	first, err := ParseEmail("stable@example.com")
	require.NoError(t, err)

	second, err := ParseEmail(first.String())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}

func TestParseEmail_CaseSensitiveEquality(t *testing.T) {
	lower, err := ParseEmail("user@example.com")
	require.NoError(t, err)
	upper, err := ParseEmail("User@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, lower, upper)
}

func TestParsePassword(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "minimum length", raw: "12345678", wantErr: false},
		{name: "typical", raw: "plsdonthackme", wantErr: false},
		{name: "maximum length", raw: strings.Repeat("p", 256), wantErr: false},
		{name: "empty", raw: "", wantErr: true},
		{name: "one short of minimum", raw: "1234567", wantErr: true},
		{name: "one past maximum", raw: strings.Repeat("p", 257), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := ParsePassword(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPasswordLength)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, password.Raw())
		})
	}
}

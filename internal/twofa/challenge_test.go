package twofa

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginID(t *testing.T) {
	id := NewLoginID()

	parsed, err := uuid.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	// Fresh ids must differ.
	assert.NotEqual(t, id.String(), NewLoginID().String())
}

func TestParseLoginID(t *testing.T) {
	valid := uuid.NewString()
	id, err := ParseLoginID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())

	_, err = ParseLoginID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidLoginID)

	_, err = ParseLoginID("")
	assert.ErrorIs(t, err, ErrInvalidLoginID)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)

		n, err := strconv.Atoi(code.String())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "lower bound", raw: "100000", wantErr: false},
		{name: "upper bound", raw: "999999", wantErr: false},
		{name: "too short", raw: "12345", wantErr: true},
		{name: "too long", raw: "1234567", wantErr: true},
		{name: "leading zero", raw: "012345", wantErr: true},
		{name: "non-numeric", raw: "12a456", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ParseCode(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, code.String())
		})
	}
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]string
		rules     map[string]string
		wantValid bool
		wantField string
	}{
		{
			name:      "no rules passes",
			data:      map[string]string{"phone": "abc"},
			rules:     map[string]string{},
			wantValid: true,
		},
		{
			name:      "required present",
			data:      map[string]string{"phone": "12345"},
			rules:     map[string]string{"phone": "required"},
			wantValid: true,
		},
		{
			name:      "required missing",
			data:      map[string]string{},
			rules:     map[string]string{"phone": "required"},
			wantValid: false,
			wantField: "phone",
		},
		{
			name:      "required whitespace only",
			data:      map[string]string{"phone": "   "},
			rules:     map[string]string{"phone": "required"},
			wantValid: false,
			wantField: "phone",
		},
		{
			name:      "optional empty skips other rules",
			data:      map[string]string{"age": ""},
			rules:     map[string]string{"age": "numeric"},
			wantValid: true,
		},
		{
			name:      "numeric accepts float",
			data:      map[string]string{"price": "12.50"},
			rules:     map[string]string{"price": "numeric"},
			wantValid: true,
		},
		{
			name:      "numeric rejects letters",
			data:      map[string]string{"price": "12a"},
			rules:     map[string]string{"price": "numeric"},
			wantValid: false,
			wantField: "price",
		},
		{
			name:      "integer rejects float",
			data:      map[string]string{"count": "1.5"},
			rules:     map[string]string{"count": "integer"},
			wantValid: false,
			wantField: "count",
		},
		{
			name:      "email valid",
			data:      map[string]string{"contact": "user@example.com"},
			rules:     map[string]string{"contact": "email"},
			wantValid: true,
		},
		{
			name:      "email invalid",
			data:      map[string]string{"contact": "not-an-email"},
			rules:     map[string]string{"contact": "email"},
			wantValid: false,
			wantField: "contact",
		},
		{
			name:      "alpha rejects digits",
			data:      map[string]string{"city": "Berlin3"},
			rules:     map[string]string{"city": "alpha"},
			wantValid: false,
			wantField: "city",
		},
		{
			name:      "alpha_numeric accepts mix",
			data:      map[string]string{"code": "AB12"},
			rules:     map[string]string{"code": "alpha_numeric"},
			wantValid: true,
		},
		{
			name:      "alpha_numeric rejects punctuation",
			data:      map[string]string{"code": "AB-12"},
			rules:     map[string]string{"code": "alpha_numeric"},
			wantValid: false,
			wantField: "code",
		},
		{
			name:      "boolean accepts one",
			data:      map[string]string{"flag": "1"},
			rules:     map[string]string{"flag": "boolean"},
			wantValid: true,
		},
		{
			name:      "boolean rejects yes",
			data:      map[string]string{"flag": "yes"},
			rules:     map[string]string{"flag": "boolean"},
			wantValid: false,
			wantField: "flag",
		},
		{
			name:      "url requires scheme and host",
			data:      map[string]string{"site": "example.com"},
			rules:     map[string]string{"site": "url"},
			wantValid: false,
			wantField: "site",
		},
		{
			name:      "url valid",
			data:      map[string]string{"site": "https://example.com/path"},
			rules:     map[string]string{"site": "url"},
			wantValid: true,
		},
		{
			name:      "in accepts listed value",
			data:      map[string]string{"plan": "pro"},
			rules:     map[string]string{"plan": "in:free,pro,enterprise"},
			wantValid: true,
		},
		{
			name:      "in rejects unlisted value",
			data:      map[string]string{"plan": "gold"},
			rules:     map[string]string{"plan": "in:free,pro,enterprise"},
			wantValid: false,
			wantField: "plan",
		},
		{
			name:      "min length",
			data:      map[string]string{"name": "ab"},
			rules:     map[string]string{"name": "min:3"},
			wantValid: false,
			wantField: "name",
		},
		{
			name:      "max length",
			data:      map[string]string{"name": "abcdef"},
			rules:     map[string]string{"name": "max:5"},
			wantValid: false,
			wantField: "name",
		},
		{
			name:      "max counts runes not bytes",
			data:      map[string]string{"name": "äöüäö"},
			rules:     map[string]string{"name": "max:5"},
			wantValid: true,
		},
		{
			name:      "regex match",
			data:      map[string]string{"zip": "12345"},
			rules:     map[string]string{"zip": `regex:^[0-9]{5}$`},
			wantValid: true,
		},
		{
			name:      "regex mismatch",
			data:      map[string]string{"zip": "1234"},
			rules:     map[string]string{"zip": `regex:^[0-9]{5}$`},
			wantValid: false,
			wantField: "zip",
		},
		{
			name:      "combined rules collect all failures",
			data:      map[string]string{"phone": "abc"},
			rules:     map[string]string{"phone": "required|numeric|min:5"},
			wantValid: false,
			wantField: "phone",
		},
		{
			name:      "unknown rule token fails",
			data:      map[string]string{"phone": "123"},
			rules:     map[string]string{"phone": "requierd"},
			wantValid: false,
			wantField: "phone",
		},
		{
			name:      "invalid regex fails instead of passing",
			data:      map[string]string{"zip": "12345"},
			rules:     map[string]string{"zip": "regex:["},
			wantValid: false,
			wantField: "zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.data, tt.rules)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantValid {
				assert.Empty(t, res.Errors)
				return
			}
			require.Contains(t, res.Errors, tt.wantField)
			assert.NotEmpty(t, res.Errors[tt.wantField])
		})
	}
}

func TestValidateCollectsMultipleMessages(t *testing.T) {
	res := Validate(
		map[string]string{"contact": "x"},
		map[string]string{"contact": "email|min:3"},
	)
	require.False(t, res.Valid)
	assert.Len(t, res.Errors["contact"], 2)
}

func TestValidateMessageWording(t *testing.T) {
	res := Validate(map[string]string{}, map[string]string{"phone": "required"})
	require.False(t, res.Valid)
	assert.Equal(t, "The phone field is required.", res.Errors["phone"][0])
}

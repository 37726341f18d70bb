package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aviation-iia/run-endpoint/internal/validation"
)

func TestNormaliseIATA(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{
			Name:     "lowercase_with_whitespace",
			Input:    " jfk ",
			Expected: "JFK",
		},
		{
			Name:     "already_normalised",
			Input:    "LHR",
			Expected: "LHR",
		},
		{
			Name:     "mixed_case",
			Input:    "sFo",
			Expected: "SFO",
		},
		{
			Name:     "trailing_newline",
			Input:    "cdg\n",
			Expected: "CDG",
		},
		{
			Name:     "empty",
			Input:    "",
			Expected: "",
		},
		{
			Name:     "whitespace_only",
			Input:    "   ",
			Expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, validation.NormaliseIATA(tc.Input))
		})
	}
}

func TestValidIATA(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected bool
	}{
		{
			Name:     "valid",
			Input:    "JFK",
			Expected: true,
		},
		{
			Name:     "lowercase_rejected",
			Input:    "jfk",
			Expected: false,
		},
		{
			Name:     "digit_rejected",
			Input:    "AB1",
			Expected: false,
		},
		{
			Name:     "too_short",
			Input:    "AB",
			Expected: false,
		},
		{
			Name:     "too_long",
			Input:    "ABCD",
			Expected: false,
		},
		{
			Name:     "empty",
			Input:    "",
			Expected: false,
		},
		{
			Name:     "embedded_whitespace",
			Input:    "A B",
			Expected: false,
		},
		{
			Name:     "non_latin_letters",
			Input:    "ÀBC",
			Expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, validation.ValidIATA(tc.Input))
		})
	}
}

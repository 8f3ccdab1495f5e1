package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "github-profile-analyzer/internal/errors"
)

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "octocat", true},
		{"single character", "a", true},
		{"with hyphen", "octo-cat", true},
		{"digits", "1234", true},
		{"max length", "a23456789012345678901234567890123456789", true},
		{"too long", "a234567890123456789012345678901234567890", false},
		{"empty", "", false},
		{"leading hyphen", "-octocat", false},
		{"trailing hyphen", "octocat-", false},
		{"double hyphen", "octo--cat", false},
		{"underscore", "octo_cat", false},
		{"dot", "octo.cat", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, custom_errors.KindValidation, custom_errors.KindOf(err))
			var invalid *custom_errors.ErrInvalidUsername
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.username, invalid.Username)
		})
	}
}

func TestUsername_Messages(t *testing.T) {
	assert.Equal(t, "Username is required", custom_errors.Message(Username("")))
	assert.Equal(t, "Invalid GitHub username format", custom_errors.Message(Username("bad_name")))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		want      Pagination
		wantError string
	}{
		{name: "defaults", want: Pagination{Page: 1, Limit: 10}},
		{name: "explicit", page: "3", limit: "25", want: Pagination{Page: 3, Limit: 25}},
		{name: "unparsable falls back", page: "abc", limit: "x", want: Pagination{Page: 1, Limit: 10}},
		{name: "zero falls back", page: "0", limit: "0", want: Pagination{Page: 1, Limit: 10}},
		{name: "upper bound", limit: "100", want: Pagination{Page: 1, Limit: 100}},
		{name: "negative page", page: "-1", wantError: "page must be at least 1"},
		{name: "limit too large", limit: "101", wantError: "limit must be at most 100"},
		{name: "last page", page: "1000000", limit: "100", want: Pagination{Page: MaxPage, Limit: 100}},
		{name: "page too large", page: "42949674", limit: "100", wantError: "page must be at most 1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePagination(tt.page, tt.limit)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Equal(t, custom_errors.KindValidation, custom_errors.KindOf(err))
				assert.Equal(t, tt.wantError, custom_errors.Message(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

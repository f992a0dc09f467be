package sitechat_test

import (
	"testing"

	"github.com/duna-akin/sitechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips trailing slash", "https://lafayette.edu/admissions/", "https://lafayette.edu/admissions"},
		{"lowercases host", "https://Admissions.Lafayette.EDU/apply", "https://admissions.lafayette.edu/apply"},
		{"strips fragment", "https://lafayette.edu/apply#deadlines", "https://lafayette.edu/apply"},
		{"strips default https port", "https://lafayette.edu:443/apply", "https://lafayette.edu/apply"},
		{"strips default http port", "http://lafayette.edu:80/apply", "http://lafayette.edu/apply"},
		{"keeps non-default port", "https://lafayette.edu:8443/apply", "https://lafayette.edu:8443/apply"},
		{"keeps query", "https://lafayette.edu/search?q=aid", "https://lafayette.edu/search?q=aid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sitechat.NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("trailing slash variants normalize to the same key", func(t *testing.T) {
		t.Parallel()

		a, err := sitechat.NormalizeURL("https://lafayette.edu/financial-aid/")
		require.NoError(t, err)
		b, err := sitechat.NormalizeURL("https://lafayette.edu/financial-aid")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("relative URL fails with EMALFORMED", func(t *testing.T) {
		t.Parallel()

		_, err := sitechat.NormalizeURL("/financial-aid")
		require.Error(t, err)
		assert.Equal(t, sitechat.EMALFORMED, sitechat.ErrorCode(err))
	})
}

func TestDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "admissions.lafayette.edu", sitechat.Domain("https://Admissions.Lafayette.edu:8080/apply"))
	assert.Empty(t, sitechat.Domain("::bad::"))
}

func TestOnDomain(t *testing.T) {
	t.Parallel()

	assert.True(t, sitechat.OnDomain("https://lafayette.edu/apply", "lafayette.edu"))
	assert.True(t, sitechat.OnDomain("https://admissions.lafayette.edu/", "lafayette.edu"))
	assert.False(t, sitechat.OnDomain("https://notlafayette.edu/", "lafayette.edu"))
	assert.False(t, sitechat.OnDomain("https://lafayette.edu.evil.com/", "lafayette.edu"))
}

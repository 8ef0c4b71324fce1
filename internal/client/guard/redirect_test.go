package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReturnPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"/business/42", "/business/42"},
		{"%2Fbusiness%2F42", "/business/42"},
		{"http://evil.com", DefaultPath},
		{"http%3A%2F%2Fevil.com", DefaultPath},
		{"//evil.com/path", DefaultPath},
		{"%2F%2Fevil.com", DefaultPath},
		{"/\\evil.com", DefaultPath},
		{"business/42", DefaultPath},
		{"%E0%A4%A", DefaultPath},
		{"", DefaultPath},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveReturnPath(tt.raw))
		})
	}
}

func TestPostAuthRedirect_RejectsOpenRedirect(t *testing.T) {
	nav := &recordingNavigator{}
	r := NewPostAuthRedirect("http://evil.com", nav)

	r.Observe(true)

	require.Len(t, nav.paths, 1)
	assert.NotContains(t, nav.paths[0], "evil.com")
	assert.Equal(t, DefaultPath, nav.paths[0])
}

func TestPostAuthRedirect_NavigatesExactlyOnce(t *testing.T) {
	nav := &recordingNavigator{}
	r := NewPostAuthRedirect("/business/42", nav)

	assert.False(t, r.Observe(false))
	assert.True(t, r.Observe(true))
	assert.False(t, r.Observe(true))
	assert.False(t, r.Observe(true))

	assert.Equal(t, []string{"/business/42"}, nav.paths)
	assert.True(t, r.Fired())
}

func TestPostAuthRedirect_NoReturnPath(t *testing.T) {
	nav := &recordingNavigator{}
	r := NewPostAuthRedirect("", nav)

	assert.False(t, r.Observe(true))
	assert.Empty(t, nav.paths)
}

func TestPostAuthRedirect_WatchFiresOnLogin(t *testing.T) {
	s := newSession(false)
	nav := &recordingNavigator{}
	r := NewPostAuthRedirect("%2Fbusiness%2F42", nav)

	stop := r.Watch(s)
	defer stop()
	assert.Empty(t, nav.paths)

	s.signIn()
	s.signIn()

	assert.Equal(t, []string{"/business/42"}, nav.paths)
}

func TestPostAuthRedirect_WatchAlreadyAuthenticated(t *testing.T) {
	nav := &recordingNavigator{}
	r := NewPostAuthRedirect("/bookings", nav)

	stop := r.Watch(newSession(true))
	stop()

	assert.Equal(t, []string{"/bookings"}, nav.paths)
}

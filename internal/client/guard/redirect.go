package guard

import (
	"net/url"
	"strings"
	"sync"

	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
)

type Navigator interface {
	Navigate(path string)
}

// Observable is a Session that reports changes.
type Observable interface {
	Session
	Subscribe(fn func(models.AuthState)) (unsubscribe func())
}

// ResolveReturnPath decodes raw and accepts it only as an app-relative path.
// Anything else, including absolute and protocol-relative URLs, resolves to
// DefaultPath.
func ResolveReturnPath(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return DefaultPath
	}
	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") || strings.HasPrefix(decoded, "/\\") {
		return DefaultPath
	}
	return decoded
}

// PostAuthRedirect navigates once, the first time it observes an
// authenticated session while holding a return path.
type PostAuthRedirect struct {
	returnPath string
	nav        Navigator

	mu    sync.Mutex
	fired bool
}

func NewPostAuthRedirect(returnPath string, nav Navigator) *PostAuthRedirect {
	return &PostAuthRedirect{returnPath: returnPath, nav: nav}
}

// Observe reports whether this call navigated.
func (r *PostAuthRedirect) Observe(isAuthenticated bool) bool {
	if !isAuthenticated || r.returnPath == "" {
		return false
	}

	r.mu.Lock()
	if r.fired {
		r.mu.Unlock()
		return false
	}
	r.fired = true
	r.mu.Unlock()

	r.nav.Navigate(ResolveReturnPath(r.returnPath))
	return true
}

// Fired reports whether the redirect already happened.
func (r *PostAuthRedirect) Fired() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}

// Watch observes the current state of s and every later change until the
// returned stop function is called.
func (r *PostAuthRedirect) Watch(s Observable) (stop func()) {
	stop = s.Subscribe(func(st models.AuthState) { r.Observe(st.IsAuthenticated()) })
	r.Observe(s.State().IsAuthenticated())
	return stop
}

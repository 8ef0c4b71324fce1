package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sambulosenda/glamfric-mobile/internal/client/guard"
)

// shell is the terminal stand-in for the app's router and sign-in sheet.
type shell struct {
	out     io.Writer
	session guard.Observable

	mu        sync.Mutex
	path      string
	history   []string
	redirect  *guard.PostAuthRedirect
	stopWatch func()
}

func newShell(out io.Writer, session guard.Observable) *shell {
	return &shell{out: out, session: session, path: guard.DefaultPath}
}

// Navigate implements guard.Navigator.
func (s *shell) Navigate(path string) {
	s.mu.Lock()
	s.path = path
	s.history = append(s.history, path)
	s.mu.Unlock()

	fmt.Fprintf(s.out, "→ %s\n", path)
	if strings.HasPrefix(path, guard.LoginPath) {
		fmt.Fprintln(s.out, "Run 'login' or 'signup' to continue.")
	}
}

func (s *shell) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

func (s *shell) visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// PromptSignIn implements guard.Prompter. It shows the sheet, or jumps to
// the login route when asked to, and arms a one-shot redirect back to the
// return path for when the session becomes authenticated.
func (s *shell) PromptSignIn(p guard.SignInPrompt) {
	fmt.Fprintf(s.out, "%s\n%s\n", p.Title, p.Message)

	s.arm(guard.ReturnPathFromHref(p.LoginHref))

	if p.Redirect {
		s.Navigate(p.LoginHref)
		return
	}
	fmt.Fprintf(s.out, "  login:  %s\n  signup: %s\n", p.LoginHref, p.SignupHref)
}

func (s *shell) arm(returnPath string) {
	s.mu.Lock()
	stop := s.stopWatch
	s.redirect = guard.NewPostAuthRedirect(returnPath, s)
	redirect := s.redirect
	s.mu.Unlock()

	if stop != nil {
		stop()
	}

	unsubscribe := redirect.Watch(s.session)

	s.mu.Lock()
	s.stopWatch = unsubscribe
	s.mu.Unlock()
}

func (s *shell) stop() {
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}

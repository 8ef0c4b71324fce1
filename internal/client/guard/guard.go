// Package guard gates protected actions behind an authenticated session and
// sends the user back where they were once they sign in.
package guard

import (
	"net/url"

	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
)

const (
	DefaultMessage = "Sign in to continue"
	PromptTitle    = "Sign In Required"

	LoginPath  = "/(auth)/login"
	SignupPath = "/(auth)/signup"
	// DefaultPath is the landing screen when there is no usable return path.
	DefaultPath = "/(tabs)"

	returnPathParam = "returnPath"
)

// Session exposes the current auth state.
type Session interface {
	State() models.AuthState
}

// SignInPrompt is what a guarded action shows to an anonymous user.
type SignInPrompt struct {
	Title      string
	Message    string
	ReturnPath string
	LoginHref  string
	SignupHref string
	// Redirect asks for an immediate jump to LoginHref instead of a prompt.
	Redirect bool
}

type Prompter interface {
	PromptSignIn(p SignInPrompt)
}

type Options struct {
	Message string
	// ReturnPath defaults to CurrentPath.
	ReturnPath  string
	CurrentPath string
	// RedirectToLogin skips the prompt, for screens that are wholly protected.
	RedirectToLogin bool
}

// RequireAuth runs action right away when the session is authenticated.
// Otherwise it hands a sign-in prompt to p and never runs action; resuming
// after login is PostAuthRedirect's job.
func RequireAuth(s Session, action func(), opts Options, p Prompter) {
	if s.State().IsAuthenticated() {
		action()
		return
	}

	msg := opts.Message
	if msg == "" {
		msg = DefaultMessage
	}
	returnPath := opts.ReturnPath
	if returnPath == "" {
		returnPath = opts.CurrentPath
	}

	p.PromptSignIn(SignInPrompt{
		Title:      PromptTitle,
		Message:    msg,
		ReturnPath: returnPath,
		LoginHref:  Href(LoginPath, returnPath),
		SignupHref: Href(SignupPath, returnPath),
		Redirect:   opts.RedirectToLogin,
	})
}

// Href builds a sign-in route carrying returnPath as a query parameter.
func Href(route, returnPath string) string {
	return route + "?" + returnPathParam + "=" + url.QueryEscape(returnPath)
}

// ReturnPathFromHref extracts the return path of a route built by Href.
func ReturnPathFromHref(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get(returnPathParam)
}

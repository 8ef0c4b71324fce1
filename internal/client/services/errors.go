package services

// SessionError is returned by the auth actions. Message is safe to show to
// the user; Err keeps the cause for errors.Is and errors.As.
type SessionError struct {
	Op      string
	Message string
	Err     error
}

func (e *SessionError) Error() string { return e.Message }

func (e *SessionError) Unwrap() error { return e.Err }

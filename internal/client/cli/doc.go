// Package cli is the interactive Glamfric terminal client.
//
// It wires configuration, the on-device stores, the GraphQL client and the
// session and preference containers, then runs a REPL that plays the part of
// the app's screens: it reads state, dispatches actions and reacts to state
// changes. A background watcher reports whether the backend is reachable.
//
// Commands:
//   - login / signup / verify / resend / logout / whoami
//   - search <text>, open <path>, book <business-id>
//   - prefs, theme, lang, notify, compact, onboarding, reset-prefs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

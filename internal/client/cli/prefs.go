package cli

import (
	"context"
	"fmt"

	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
)

// welcome greets the user. The onboarding hint is shown until onboarding is
// completed; the first launch flag is cleared after the first greeting.
func (a *App) welcome() {
	p := a.prefs.State()

	if p.IsFirstLaunch {
		a.printf("Welcome to Glamfric! Discover salons, spas and barbers near you.\n")
		a.prefs.SetIsFirstLaunch(false)
	} else if user := a.auth.State().User; user != nil {
		a.printf("Welcome back, %s!\n", user.DisplayName())
	} else {
		a.printf("Welcome back!\n")
	}

	if !p.OnboardingCompleted {
		a.printf("New here? Try 'search nails', then 'onboarding on' to hide this tip.\n")
	}
	a.printf("Type 'help' for the list of commands.\n")
}

// Prefs prints the current preferences.
func (a *App) Prefs(context.Context) error {
	p := a.prefs.State()
	a.printf("theme:         %s\n", p.Theme)
	a.printf("language:      %s\n", p.Language)
	a.printf("notifications: %s\n", onOff(p.NotificationsEnabled))
	a.printf("compact:       %s\n", onOff(p.CompactMode))
	a.printf("onboarding:    %s\n", onOff(p.OnboardingCompleted))
	return nil
}

// SetPreference updates one preference by name.
func (a *App) SetPreference(_ context.Context, name string, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: %s <value>\n", name)
		return fmt.Errorf("missing value for %s", name)
	}
	v := args[0]

	var err error
	switch name {
	case "theme":
		err = a.prefs.SetTheme(models.Theme(v))
	case "lang":
		err = a.prefs.SetLanguage(models.Language(v))
	default:
		var on bool
		if on, err = parseSwitch(v); err != nil {
			break
		}
		switch name {
		case "notify":
			a.prefs.SetNotificationsEnabled(on)
		case "compact":
			a.prefs.SetCompactMode(on)
		case "onboarding":
			a.prefs.SetOnboardingCompleted(on)
		default:
			err = fmt.Errorf("unknown preference %q", name)
		}
	}

	if err != nil {
		a.printf("Error: %v\n", err)
		return err
	}
	a.printf("Saved.\n")
	return nil
}

func (a *App) ResetPrefs(context.Context) error {
	a.prefs.ResetPreferences()
	a.printf("Preferences reset.\n")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

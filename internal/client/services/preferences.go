package services

import (
	"fmt"

	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
	"github.com/sambulosenda/glamfric-mobile/internal/client/persist"
	"github.com/sambulosenda/glamfric-mobile/internal/client/state"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// PreferencesService is the UI preferences container. Preferences belong to
// the device and survive login and logout.
type PreferencesService interface {
	State() models.Preferences
	Subscribe(fn func(models.Preferences)) (unsubscribe func())
	Hydrate()
	Phase() persist.Phase

	SetTheme(theme models.Theme) error
	SetLanguage(lang models.Language) error
	SetNotificationsEnabled(enabled bool)
	SetOnboardingCompleted(completed bool)
	SetIsFirstLaunch(first bool)
	SetCompactMode(compact bool)
	// ResetPreferences restores defaults except the onboarding and
	// first-launch flags.
	ResetPreferences()
}

type preferencesService struct {
	store     *state.Store[models.Preferences]
	persister *persist.Persister[models.Preferences, models.Preferences]
}

func NewPreferencesService(storage persist.Storage, logger logging.Logger) PreferencesService {
	p := &preferencesService{store: state.New(models.DefaultPreferences())}

	p.persister = persist.Attach(p.store, storage, persist.Options[models.Preferences, models.Preferences]{
		Name:    common.PreferencesStorageName,
		Project: func(s models.Preferences) models.Preferences { return s },
		Restore: func(s *models.Preferences, snap models.Preferences) {
			if !snap.Theme.Valid() {
				snap.Theme = s.Theme
			}
			if !snap.Language.Valid() {
				snap.Language = s.Language
			}
			*s = snap
		},
	}, logger)

	return p
}

func (p *preferencesService) State() models.Preferences { return p.store.Get() }

func (p *preferencesService) Subscribe(fn func(models.Preferences)) func() {
	return p.store.Subscribe(fn)
}

func (p *preferencesService) Hydrate() { p.persister.Hydrate() }

func (p *preferencesService) Phase() persist.Phase { return p.persister.Phase() }

func (p *preferencesService) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: theme %q", common.ErrInvalidPreference, theme)
	}
	p.store.Update(func(s *models.Preferences) { s.Theme = theme })
	return nil
}

func (p *preferencesService) SetLanguage(lang models.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: language %q", common.ErrInvalidPreference, lang)
	}
	p.store.Update(func(s *models.Preferences) { s.Language = lang })
	return nil
}

func (p *preferencesService) SetNotificationsEnabled(enabled bool) {
	p.store.Update(func(s *models.Preferences) { s.NotificationsEnabled = enabled })
}

func (p *preferencesService) SetOnboardingCompleted(completed bool) {
	p.store.Update(func(s *models.Preferences) { s.OnboardingCompleted = completed })
}

func (p *preferencesService) SetIsFirstLaunch(first bool) {
	p.store.Update(func(s *models.Preferences) { s.IsFirstLaunch = first })
}

func (p *preferencesService) SetCompactMode(compact bool) {
	p.store.Update(func(s *models.Preferences) { s.CompactMode = compact })
}

func (p *preferencesService) ResetPreferences() {
	p.store.Update(func(s *models.Preferences) {
		d := models.DefaultPreferences()
		d.OnboardingCompleted = s.OnboardingCompleted
		d.IsFirstLaunch = s.IsFirstLaunch
		*s = d
	})
}

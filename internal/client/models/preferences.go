package models

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageFrench:
		return true
	}
	return false
}

// Preferences are device-level UI settings. They outlive sessions.
type Preferences struct {
	Theme                Theme    `json:"theme"`
	Language             Language `json:"language"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
	OnboardingCompleted  bool     `json:"onboardingCompleted"`
	IsFirstLaunch        bool     `json:"isFirstLaunch"`
	CompactMode          bool     `json:"compactMode"`
}

// DefaultPreferences returns the settings of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                ThemeSystem,
		Language:             LanguageEnglish,
		NotificationsEnabled: true,
		OnboardingCompleted:  false,
		IsFirstLaunch:        true,
		CompactMode:          false,
	}
}

package models

// Settings is the small user-preferences blob persisted outside the note
// database. It is a convenience store, not a source of truth for notes.
type Settings struct {
	ThemeMode   string `json:"theme_mode"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

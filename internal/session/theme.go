package session

// Theme is the two-valued display preference. It lives in process memory
// only; a restart resets every user to dark.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Theme returns the user's current preference, defaulting to dark.
func (m *Manager) Theme(userID string) Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.themes[userID]; ok {
		return t
	}
	return ThemeDark
}

// ToggleTheme flips the preference and returns the new value.
func (m *Manager) ToggleTheme(userID string) Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := ThemeLight
	if m.themes[userID] == ThemeLight {
		next = ThemeDark
	}
	m.themes[userID] = next
	return next
}

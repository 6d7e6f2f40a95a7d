// Package view models the single-page view switch as a small state machine.
// No routing state survives a reload: a new Controller always starts at the
// splash screen.
package view

import "fmt"

type View string

const (
	ViewSplash         View = "splash"
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewDashboard      View = "dashboard"
	ViewApplications   View = "applications"
	ViewAddApplication View = "add-application"
	ViewResumes        View = "resumes"
	ViewSettings       View = "settings"
)

var knownViews = map[View]bool{
	ViewSplash:         true,
	ViewLogin:          true,
	ViewRegister:       true,
	ViewDashboard:      true,
	ViewApplications:   true,
	ViewAddApplication: true,
	ViewResumes:        true,
	ViewSettings:       true,
}

// IsAuthenticated reports whether v is one of the signed-in screens.
func IsAuthenticated(v View) bool {
	switch v {
	case ViewDashboard, ViewApplications, ViewAddApplication, ViewResumes, ViewSettings:
		return true
	}
	return false
}

type Controller struct {
	current View
}

func NewController() *Controller {
	return &Controller{current: ViewSplash}
}

func (c *Controller) Current() View {
	return c.current
}

// FinishSplash resolves the splash screen after its one-shot delay: dashboard
// when a session is cached, login otherwise.
func (c *Controller) FinishSplash(hasSession bool) View {
	if c.current != ViewSplash {
		return c.current
	}
	if hasSession {
		c.current = ViewDashboard
	} else {
		c.current = ViewLogin
	}
	return c.current
}

// AuthSucceeded moves login or register to the dashboard.
func (c *Controller) AuthSucceeded() View {
	if c.current == ViewLogin || c.current == ViewRegister {
		c.current = ViewDashboard
	}
	return c.current
}

// Navigate moves to target by explicit user action. The splash screen only
// leaves via FinishSplash. Navigation to authenticated screens is not guarded
// by session state.
func (c *Controller) Navigate(target View) error {
	if !knownViews[target] {
		return fmt.Errorf("unknown view %q", target)
	}
	if c.current == ViewSplash {
		return fmt.Errorf("cannot navigate away from splash")
	}
	if target == ViewSplash {
		return fmt.Errorf("cannot navigate to splash")
	}
	c.current = target
	return nil
}

// Reset models a full reload: back to splash, nothing persisted.
func (c *Controller) Reset() {
	c.current = ViewSplash
}

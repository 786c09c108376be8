package enums

// View is the top-level mode the session controller is in.
type View string

const (
	ViewLogin      View = "LOGIN"
	ViewOnboarding View = "ONBOARDING"
	ViewDashboard  View = "DASHBOARD"
)

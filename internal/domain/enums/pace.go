package enums

// Pace is the target weekly weight-change profile picked during onboarding.
type Pace string

const (
	PaceKoala  Pace = "Koala"
	PaceRabbit Pace = "Rabbit"
	PacePuma   Pace = "Puma"
)

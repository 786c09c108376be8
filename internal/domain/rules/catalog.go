package rules

// Fixed multi-select catalogs offered during onboarding. The wizard
// rejects values outside these lists.

var Obstacles = []string{
	"Lack of consistency",
	"Unhealthy eating habits",
	"Lack of support",
	"Busy schedule",
	"Lack of meal inspiration",
}

var Accomplishments = []string{
	"Eat and live healthy",
	"Boost my energy and mood",
	"Stay motivated and consistent",
	"Feel better about my body",
}

func AllowedObstacle(value string) bool {
	return contains(Obstacles, value)
}

func AllowedAccomplishment(value string) bool {
	return contains(Accomplishments, value)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

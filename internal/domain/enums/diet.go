package enums

// DietType values keep the exact casing the mobile clients send.
type DietType string

const (
	DietClassic     DietType = "classic"
	DietPescatarian DietType = "Pescatarian"
	DietVegetarian  DietType = "vegetarian"
	DietVegan       DietType = "Vegan"
)

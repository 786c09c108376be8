package enums

type WorkoutFrequency string

const (
	WorkoutFrequencyLow      WorkoutFrequency = "0-2"
	WorkoutFrequencyModerate WorkoutFrequency = "3-5"
	WorkoutFrequencyHigh     WorkoutFrequency = "6+"
)

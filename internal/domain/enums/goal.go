package enums

type Goal string

const (
	GoalLoseWeight Goal = "Lose Weight"
	GoalMaintain   Goal = "Maintain"
	GoalGainWeight Goal = "Gain Weight"
)

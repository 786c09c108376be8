package model

// Task is one entry of the daily dashboard checklist.
type Task struct {
	ID       int    `json:"id"`
	Time     string `json:"time"`
	Label    string `json:"label"`
	Calories int    `json:"calories"`
	Done     bool   `json:"done"`
}

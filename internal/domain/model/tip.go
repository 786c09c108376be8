package model

// Tip is one AI-generated diet/health suggestion shown on the dashboard.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

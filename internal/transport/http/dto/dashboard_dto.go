package dto

import "github.com/RostianaElla/caihealth/internal/domain/model"

type DashboardResponse struct {
	Profile         model.Profile        `json:"profile"`
	Tasks           []model.Task         `json:"tasks"`
	ProgressPercent int                  `json:"progress_percent"`
	ActiveCalories  int                  `json:"active_calories"`
	WeightTrend     []model.WeightRecord `json:"weight_trend"`
}

type TaskToggleResponse struct {
	Task            model.Task `json:"task"`
	ProgressPercent int        `json:"progress_percent"`
	ActiveCalories  int        `json:"active_calories"`
}

type TipsResponse struct {
	Tips []model.Tip `json:"tips"`
}

type WeightRecordRequest struct {
	Day      string  `json:"day"`
	WeightKG float64 `json:"weight"`
}

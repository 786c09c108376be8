package dto

import "github.com/RostianaElla/caihealth/internal/domain/model"

type StepResponse struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
}

type SessionResponse struct {
	View    string         `json:"view"`
	Step    *StepResponse  `json:"step,omitempty"`
	Profile *model.Profile `json:"profile,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

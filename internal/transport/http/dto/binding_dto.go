package dto

type BindingAccount struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

type BindingPromptResponse struct {
	AttemptID string           `json:"attempt_id"`
	Accounts  []BindingAccount `json:"accounts"`
}

type BindingConfirmRequest struct {
	AccountID string `json:"account_id"`
}

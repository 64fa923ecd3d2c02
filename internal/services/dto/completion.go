package dto

import "time"

type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type CompletionCodeResponse struct {
	WorkID      string    `json:"work_id"`
	Code        string    `json:"code"`
	GeneratedAt time.Time `json:"generated_at"`
}

package dto

type ConvertRequest struct {
	Style string `form:"style" binding:"required,oneof=quick summary deep"`
	Voice string `form:"voice" binding:"required,oneof=rachel adam bella"`
}

type ConvertResponse struct {
	Success      bool   `json:"success"`
	AudioURL     string `json:"audio_url"`
	Script       string `json:"script"`
	ConversionID string `json:"conversion_id"`
}

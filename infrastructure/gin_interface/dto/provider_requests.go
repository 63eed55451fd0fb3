package dto

type GenerateSpeechRequest struct {
	Text    string `json:"text" binding:"required"`
	VoiceID string `json:"voice_id"`
}

type GenerateSpeechResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	AudioURL string `json:"audio_url,omitempty"`
}

type TranscriptionResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	Transcript    string  `json:"transcript,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	AudioDuration float64 `json:"audio_duration,omitempty"`
}

type TranscribePathRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

type QueryRequest struct {
	Text  string `json:"text" binding:"required"`
	Model string `json:"model"`
}

type QueryResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Response  string `json:"response,omitempty"`
	ModelUsed string `json:"model_used,omitempty"`
}

type ModelListResponse struct {
	Success      bool     `json:"success"`
	Models       []string `json:"models"`
	Count        int      `json:"count"`
	DefaultModel string   `json:"default_model"`
}

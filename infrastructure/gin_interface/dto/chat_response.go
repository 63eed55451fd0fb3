package dto

type ChatResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	SessionID       string  `json:"session_id"`
	TranscribedText string  `json:"transcribed_text,omitempty"`
	LLMResponse     string  `json:"llm_response"`
	AudioURL        string  `json:"audio_url,omitempty"`
	FailedStage     string  `json:"failed_stage,omitempty"`
	ProcessingTime  float64 `json:"processing_time"`
	MessageCount    int     `json:"message_count"`
}

type SessionMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type SessionResponse struct {
	Success      bool             `json:"success"`
	SessionID    string           `json:"session_id"`
	Messages     []SessionMessage `json:"messages"`
	MessageCount int              `json:"message_count"`
}

type SessionSummaryItem struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type SessionListResponse struct {
	Success       bool                 `json:"success"`
	Sessions      []SessionSummaryItem `json:"sessions"`
	TotalSessions int                  `json:"total_sessions"`
}

type AudioQueryResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	TranscribedText string  `json:"transcribed_text,omitempty"`
	LLMResponse     string  `json:"llm_response,omitempty"`
	AudioURL        string  `json:"audio_url,omitempty"`
	ModelUsed       string  `json:"model_used,omitempty"`
	ProcessingTime  float64 `json:"processing_time"`
}

type EchoResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	Transcript string  `json:"transcript,omitempty"`
	AudioURL   string  `json:"audio_url,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

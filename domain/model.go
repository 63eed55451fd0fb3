package domain

import "time"

type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)

// PipelineStage identifies the stage of a conversational turn that failed.
// The zero value means no stage failed.
type PipelineStage string

const (
	NoStage            PipelineStage = ""
	TranscriptionStage PipelineStage = "transcription"
	GenerationStage    PipelineStage = "generation"
	SynthesisStage     PipelineStage = "synthesis"
)

func NewChatMessage(role Role, content string) ChatMessage {
	return ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatSession struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PipelineOutcome is the transient result of one conversational turn. It is
// assembled fresh per turn and never stored.
type PipelineOutcome struct {
	TranscribedText string
	ResponseText    string
	AudioRef        string
	Succeeded       bool
	FailedStage     PipelineStage
	ProcessingTime  time.Duration
}

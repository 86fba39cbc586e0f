package console

import "fmt"

// View names the three screens of the client.
type View string

const (
	ViewPromptConfig  View = "prompt-config"
	ViewBrandGuidance View = "brand-guidance"
	ViewResults       View = "results"
)

func (v View) Valid() bool {
	switch v {
	case ViewPromptConfig, ViewBrandGuidance, ViewResults:
		return true
	}
	return false
}

// GenerationPhase tracks where the current generation attempt stands.
type GenerationPhase string

const (
	PhaseIdle       GenerationPhase = "idle"
	PhaseInProgress GenerationPhase = "in-progress"
	PhaseSuccess    GenerationPhase = "success"
	PhaseFailure    GenerationPhase = "failure"
)

// GenerationState is the transient result of the last generation attempt.
type GenerationState struct {
	Phase    GenerationPhase
	Prompt   string
	Metadata map[string]interface{}
	Message  string
	BodyText string
}

// BackendProbe is the rendered connectivity state.
type BackendProbe string

const (
	BackendNotChecked   BackendProbe = "not-checked"
	BackendConnected    BackendProbe = "connected"
	BackendDisconnected BackendProbe = "disconnected"
)

// BackendStatus is the outcome of the last explicit backend check.
type BackendStatus struct {
	Probe      BackendProbe
	StatusCode int
	Detail     string
}

func (s BackendStatus) String() string {
	switch s.Probe {
	case BackendConnected:
		return fmt.Sprintf("connected (status %d)", s.StatusCode)
	case BackendDisconnected:
		if s.StatusCode > 0 {
			return fmt.Sprintf("disconnected (status %d)", s.StatusCode)
		}
		return fmt.Sprintf("disconnected (%s)", s.Detail)
	default:
		return "not checked"
	}
}

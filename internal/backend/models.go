package backend

// Wire shapes for the prompt-generation backend. Field names follow the
// backend schema, not the UI field names.

type GenerationRequest struct {
	Orientation       string `json:"orientation"`
	Platform          string `json:"platform"`
	Brief             string `json:"brief"`
	AdditionalContext string `json:"additional_context,omitempty"`
	Brand             Brand  `json:"brand"`
	Style             Style  `json:"style"`
}

type Brand struct {
	BrandName      string `json:"brand_name"`
	Description    string `json:"description,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	Voice          Voice  `json:"voice"`
}

type Voice struct {
	Tone     string   `json:"tone"`
	Keywords []string `json:"keywords"`
	Avoid    []string `json:"avoid"`
}

type Style struct {
	Length          string `json:"length"`
	IncludeHashtags bool   `json:"include_hashtags"`
	EmojiLevel      int    `json:"emoji_level"`
	FormattingNotes string `json:"formatting_notes,omitempty"`
}

// Fixed request defaults. The UI never exposes these.
const (
	defaultTone       = "professional"
	defaultLength     = "medium"
	defaultEmojiLevel = 0
)

// GenerationResult carries the decoded success body. Raw keeps the body
// verbatim so extra fields the backend adds survive untouched.
type GenerationResult struct {
	Prompt   string                 `json:"prompt"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Raw      map[string]interface{} `json:"-"`
}

// HealthStatus reports a health-check outcome. Non-2xx responses are a
// status here, not an error.
type HealthStatus struct {
	OK       bool   `json:"ok"`
	Status   int    `json:"status"`
	BodyText string `json:"bodyText,omitempty"`
}

// ConfigInfo is the backend's public configuration (GET /config).
type ConfigInfo struct {
	Version string                 `json:"version"`
	Raw     map[string]interface{} `json:"-"`
}

// DefaultSettings is the backend's suggested defaults (GET /settings/defaults).
type DefaultSettings struct {
	Brand struct {
		BrandName string `json:"brand_name"`
	} `json:"brand"`
	Style map[string]interface{} `json:"style,omitempty"`
}

// Package settings holds the user's persisted configuration record and the
// storage backends it syncs through.
package settings

// Persisted key names. The stored record is always a flat mapping of these
// string keys to string values; no nested structure is ever persisted.
const (
	KeyBackendBaseURL = "backendBaseUrl"
	KeyOrientation    = "orientation"
	KeyPlatform       = "platform"
	KeyObjective      = "objective"
	KeyAudience       = "audience"
	KeyTopic          = "topic"
	KeyContext        = "context"
	KeyBrandName      = "brandName"
	KeyBrandVoice     = "brandVoice"
	KeyBrandDo        = "brandDo"
	KeyBrandDont      = "brandDont"
	KeyKeywords       = "keywords"
)

// Settings is the user's configuration record: brand guidance, prompt
// parameters and the backend URL. All fields are free-form strings; the
// enum-like ones (orientation, platform, objective) hold UI labels.
type Settings struct {
	BackendBaseURL string `json:"backendBaseUrl"`
	Orientation    string `json:"orientation"`
	Platform       string `json:"platform"`
	Objective      string `json:"objective"`
	Audience       string `json:"audience"`
	Topic          string `json:"topic"`
	Context        string `json:"context"`
	BrandName      string `json:"brandName"`
	BrandVoice     string `json:"brandVoice"`
	BrandDo        string `json:"brandDo"`
	BrandDont      string `json:"brandDont"`
	Keywords       string `json:"keywords"` // comma-separated list in a single string
}

// Defaults returns the hardcoded record every session starts from.
func Defaults() Settings {
	return Settings{
		Orientation: "Post",
		Platform:    "LinkedIn",
		Objective:   "Awareness",
	}
}

// Merge lays a stored record over base. Keys present in stored win, even
// when empty; keys absent from stored keep the base value. No base field is
// ever lost by the merge.
func Merge(base Settings, stored map[string]string) Settings {
	out := base
	apply := func(key string, dst *string) {
		if v, ok := stored[key]; ok {
			*dst = v
		}
	}
	apply(KeyBackendBaseURL, &out.BackendBaseURL)
	apply(KeyOrientation, &out.Orientation)
	apply(KeyPlatform, &out.Platform)
	apply(KeyObjective, &out.Objective)
	apply(KeyAudience, &out.Audience)
	apply(KeyTopic, &out.Topic)
	apply(KeyContext, &out.Context)
	apply(KeyBrandName, &out.BrandName)
	apply(KeyBrandVoice, &out.BrandVoice)
	apply(KeyBrandDo, &out.BrandDo)
	apply(KeyBrandDont, &out.BrandDont)
	apply(KeyKeywords, &out.Keywords)
	return out
}

// ToMap flattens the record into its persisted representation.
func (s Settings) ToMap() map[string]string {
	return map[string]string{
		KeyBackendBaseURL: s.BackendBaseURL,
		KeyOrientation:    s.Orientation,
		KeyPlatform:       s.Platform,
		KeyObjective:      s.Objective,
		KeyAudience:       s.Audience,
		KeyTopic:          s.Topic,
		KeyContext:        s.Context,
		KeyBrandName:      s.BrandName,
		KeyBrandVoice:     s.BrandVoice,
		KeyBrandDo:        s.BrandDo,
		KeyBrandDont:      s.BrandDont,
		KeyKeywords:       s.Keywords,
	}
}

package backend

import (
	"strings"

	"promptpad/internal/common/errors"
	"promptpad/internal/settings"
)

// UI labels map onto a fixed backend vocabulary, case-insensitively.
// The mapping is deliberately partial: anything unlisted becomes "other"
// (e.g. "Google Ads" has no backend equivalent yet).

var orientationLabels = map[string]string{
	"post":         "post",
	"ad":           "ad",
	"email":        "email",
	"landing page": "landing_page",
	"landing_page": "landing_page",
}

var platformLabels = map[string]string{
	"linkedin":    "linkedin",
	"x (twitter)": "x",
	"x":           "x",
	"twitter":     "x",
	"instagram":   "instagram",
	"facebook":    "facebook",
	"tiktok":      "tiktok",
	"google ads":  "other",
	"google_ads":  "other",
}

// MapOrientation resolves a UI orientation label to the backend enum value.
func MapOrientation(label string) string {
	if v, ok := orientationLabels[normalizeLabel(label)]; ok {
		return v
	}
	return "other"
}

// MapPlatform resolves a UI platform label to the backend enum value.
func MapPlatform(label string) string {
	if v, ok := platformLabels[normalizeLabel(label)]; ok {
		return v
	}
	return "other"
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// isMappedPlatform reports whether a label has an explicit table entry, so
// silently-defaulted labels can be logged.
func isMappedPlatform(label string) bool {
	_, ok := platformLabels[normalizeLabel(label)]
	return ok
}

func isMappedOrientation(label string) bool {
	_, ok := orientationLabels[normalizeLabel(label)]
	return ok
}

// SplitKeywords splits the comma-separated keywords field into trimmed,
// non-empty tokens.
func SplitKeywords(raw string) []string {
	tokens := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// BuildRequest translates the user's settings into the backend request
// shape. Validation happens here, before any network call.
func BuildRequest(s settings.Settings) (*GenerationRequest, error) {
	brandName := strings.TrimSpace(s.BrandName)
	if brandName == "" {
		return nil, errors.NewValidationError("Brand name is required to generate a prompt.")
	}

	// The brief prefers topic; context is the fallback.
	brief := strings.TrimSpace(s.Topic)
	if brief == "" {
		brief = strings.TrimSpace(s.Context)
	}
	if brief == "" {
		return nil, errors.NewValidationError("Topic or context is required to generate a prompt.")
	}

	avoid := make([]string, 0, 1)
	if dont := strings.TrimSpace(s.BrandDont); dont != "" {
		avoid = append(avoid, dont)
	}

	req := &GenerationRequest{
		Orientation: MapOrientation(s.Orientation),
		Platform:    MapPlatform(s.Platform),
		Brief:       brief,
		Brand: Brand{
			BrandName:      brandName,
			Description:    strings.TrimSpace(s.BrandVoice),
			TargetAudience: strings.TrimSpace(s.Audience),
			Voice: Voice{
				Tone:     defaultTone,
				Keywords: SplitKeywords(s.Keywords),
				Avoid:    avoid,
			},
		},
		Style: Style{
			Length:          defaultLength,
			IncludeHashtags: true,
			EmojiLevel:      defaultEmojiLevel,
		},
	}

	// Context rides along as additional_context only when it is not already
	// the brief.
	if ctx := strings.TrimSpace(s.Context); ctx != "" && ctx != brief {
		req.AdditionalContext = ctx
	}

	return req, nil
}

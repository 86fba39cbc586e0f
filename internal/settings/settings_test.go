package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "Post", d.Orientation)
	assert.Equal(t, "LinkedIn", d.Platform)
	assert.Equal(t, "Awareness", d.Objective)
	assert.Empty(t, d.BrandName)
	assert.Empty(t, d.BackendBaseURL)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		check  func(t *testing.T, merged Settings)
	}{
		{
			name:   "empty stored record keeps every default",
			stored: map[string]string{},
			check: func(t *testing.T, merged Settings) {
				assert.Equal(t, Defaults(), merged)
			},
		},
		{
			name:   "stored brand name wins, defaults fill the gaps",
			stored: map[string]string{KeyBrandName: "Stored Brand"},
			check: func(t *testing.T, merged Settings) {
				assert.Equal(t, "Stored Brand", merged.BrandName)
				assert.Equal(t, "Post", merged.Orientation)
				assert.Equal(t, "LinkedIn", merged.Platform)
				assert.Equal(t, "Awareness", merged.Objective)
			},
		},
		{
			name:   "stored value overrides a default even when empty",
			stored: map[string]string{KeyOrientation: ""},
			check: func(t *testing.T, merged Settings) {
				assert.Empty(t, merged.Orientation)
				assert.Equal(t, "LinkedIn", merged.Platform)
			},
		},
		{
			name: "every known key applies",
			stored: map[string]string{
				KeyBackendBaseURL: "http://x:3001",
				KeyOrientation:    "Ad",
				KeyPlatform:       "Instagram",
				KeyObjective:      "Conversion",
				KeyAudience:       "Founders",
				KeyTopic:          "Launch",
				KeyContext:        "Spring launch",
				KeyBrandName:      "Acme",
				KeyBrandVoice:     "Bold",
				KeyBrandDo:        "Short sentences",
				KeyBrandDont:      "No jargon",
				KeyKeywords:       "a, b",
			},
			check: func(t *testing.T, merged Settings) {
				assert.Equal(t, Settings{
					BackendBaseURL: "http://x:3001",
					Orientation:    "Ad",
					Platform:       "Instagram",
					Objective:      "Conversion",
					Audience:       "Founders",
					Topic:          "Launch",
					Context:        "Spring launch",
					BrandName:      "Acme",
					BrandVoice:     "Bold",
					BrandDo:        "Short sentences",
					BrandDont:      "No jargon",
					Keywords:       "a, b",
				}, merged)
			},
		},
		{
			name:   "unknown keys are ignored",
			stored: map[string]string{"legacyField": "x", KeyTopic: "kept"},
			check: func(t *testing.T, merged Settings) {
				assert.Equal(t, "kept", merged.Topic)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Merge(Defaults(), tt.stored))
		})
	}
}

func TestToMapMergeRoundTrip(t *testing.T) {
	original := Settings{
		BackendBaseURL: "http://x:3001",
		Orientation:    "Email",
		Platform:       "Facebook",
		Objective:      "Engagement",
		Audience:       "Developers",
		Topic:          "Release notes",
		Context:        "Quarterly update",
		BrandName:      "Acme",
		BrandVoice:     "Direct",
		BrandDo:        "Use numbers",
		BrandDont:      "No hype",
		Keywords:       "go, release",
	}

	restored := Merge(Defaults(), original.ToMap())
	assert.Equal(t, original, restored)
}

func TestValidateStoredRecord(t *testing.T) {
	require.NoError(t, ValidateStoredRecord(map[string]interface{}{
		"brandName": "Acme",
		"topic":     "",
	}))

	err := ValidateStoredRecord(map[string]interface{}{
		"brand": map[string]interface{}{"name": "nested"},
	})
	require.Error(t, err)

	err = ValidateStoredRecord(map[string]interface{}{
		"count": float64(3),
	})
	require.Error(t, err)
}

package console

import (
	"fmt"

	"promptpad/internal/settings"
)

// Field tags one editable settings field. Edits are expressed as tagged
// actions so the state transitions stay explicit and testable apart from
// rendering.
type Field string

const (
	FieldBackendBaseURL Field = settings.KeyBackendBaseURL
	FieldOrientation    Field = settings.KeyOrientation
	FieldPlatform       Field = settings.KeyPlatform
	FieldObjective      Field = settings.KeyObjective
	FieldAudience       Field = settings.KeyAudience
	FieldTopic          Field = settings.KeyTopic
	FieldContext        Field = settings.KeyContext
	FieldBrandName      Field = settings.KeyBrandName
	FieldBrandVoice     Field = settings.KeyBrandVoice
	FieldBrandDo        Field = settings.KeyBrandDo
	FieldBrandDont      Field = settings.KeyBrandDont
	FieldKeywords       Field = settings.KeyKeywords
)

// Fields lists every editable field, in display order.
var Fields = []Field{
	FieldBackendBaseURL,
	FieldOrientation,
	FieldPlatform,
	FieldObjective,
	FieldAudience,
	FieldTopic,
	FieldContext,
	FieldBrandName,
	FieldBrandVoice,
	FieldBrandDo,
	FieldBrandDont,
	FieldKeywords,
}

// EditAction patches a single field.
type EditAction struct {
	Field Field
	Value string
}

// ParseField resolves a user-typed field name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Apply is a pure reducer: it returns a copy of s with the action's field
// replaced. Unknown fields leave s untouched.
func Apply(s settings.Settings, action EditAction) settings.Settings {
	switch action.Field {
	case FieldBackendBaseURL:
		s.BackendBaseURL = action.Value
	case FieldOrientation:
		s.Orientation = action.Value
	case FieldPlatform:
		s.Platform = action.Value
	case FieldObjective:
		s.Objective = action.Value
	case FieldAudience:
		s.Audience = action.Value
	case FieldTopic:
		s.Topic = action.Value
	case FieldContext:
		s.Context = action.Value
	case FieldBrandName:
		s.BrandName = action.Value
	case FieldBrandVoice:
		s.BrandVoice = action.Value
	case FieldBrandDo:
		s.BrandDo = action.Value
	case FieldBrandDont:
		s.BrandDont = action.Value
	case FieldKeywords:
		s.Keywords = action.Value
	}
	return s
}

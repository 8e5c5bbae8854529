package ctdl

import "encoding/json"

// LangString is text that serializes as a language map when the source
// document declared a language, and as a bare string otherwise:
//
//	{"en": "Algebra I"}   // Lang == "en"
//	"Algebra I"           // Lang == ""
type LangString struct {
	Lang string
	Text string
}

// Tagged builds a LangString pointer for optional fields, returning nil for
// empty text so omitempty drops the field entirely.
func Tagged(lang, text string) *LangString {
	if text == "" {
		return nil
	}
	return &LangString{Lang: lang, Text: text}
}

// Empty reports whether the value carries no usable text.
func (s *LangString) Empty() bool {
	return s == nil || s.Text == ""
}

// Value returns the carried text, tolerating a nil receiver.
func (s *LangString) Value() string {
	if s == nil {
		return ""
	}
	return s.Text
}

// Clone returns an independent copy for per-container node cloning.
func (s *LangString) Clone() *LangString {
	if s == nil {
		return nil
	}
	dup := *s
	return &dup
}

// MarshalJSON implements the dual string/map encoding.
func (s LangString) MarshalJSON() ([]byte, error) {
	if s.Lang == "" {
		return json.Marshal(s.Text)
	}
	return json.Marshal(map[string]string{s.Lang: s.Text})
}

// UnmarshalJSON accepts both encodings, for round-tripping emitted graphs
// in tests and tooling.
func (s *LangString) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Lang, s.Text = "", plain
		return nil
	}
	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	for lang, text := range tagged {
		s.Lang, s.Text = lang, text
		break
	}
	return nil
}

// Package proposal holds the speaker proposal submitted through the website:
// its wire shape, the acceptance rules and the issue report rendered from it.
package proposal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Level is the audience level a speaker targets.
type Level string

const (
	LevelIntroductory Level = "Introductory"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists the levels offered by the submission form, in display order.
var Levels = []Level{LevelIntroductory, LevelIntermediate, LevelAdvanced}

// Durations lists the talk lengths (minutes) offered by the submission form.
var Durations = []string{"15", "20", "30", "45", "60"}

// SpeakerProposal is a talk application as posted by the submission form.
type SpeakerProposal struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"looseemail"`
	Title    string `json:"title" validate:"notblank"`
	Abstract string `json:"abstract" validate:"mintrimmed=50"`
	Bio      string `json:"bio" validate:"notblank"`
	Consent  bool   `json:"consent" validate:"required"`

	Organization  string   `json:"organization,omitempty"`
	Level         Level    `json:"level,omitempty"`
	Duration      Duration `json:"duration,omitempty"`
	PreferredDate string   `json:"preferredDate,omitempty"`
	Equipment     string   `json:"equipment,omitempty"`
	Links         string   `json:"links,omitempty"`
}

// Duration is the requested talk length in minutes. The form posts it as a
// string but older clients send a bare number, so both are accepted.
type Duration string

// UnmarshalJSON accepts a JSON string, number or null.
func (d *Duration) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*d = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Duration(strings.TrimSpace(s))
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("duration must be a string or number: %w", err)
		}
		*d = Duration(n.String())
		return nil
	}
}

// Decode reads a single proposal from r.
func Decode(r io.Reader) (*SpeakerProposal, error) {
	var p SpeakerProposal
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode proposal: %w", err)
	}
	return &p, nil
}

// FirstName returns the first whitespace-delimited token of the name.
func (p *SpeakerProposal) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

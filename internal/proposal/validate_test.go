package proposal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func validProposal() SpeakerProposal {
	return SpeakerProposal{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Title:    "Running Kubernetes on a budget",
		Abstract: strings.Repeat("a", MinAbstractLength),
		Bio:      "Platform engineer in Kampala.",
		Consent:  true,
	}
}

func TestValidate_Valid(t *testing.T) {
	errs := Validate(validProposal())
	assert.True(t, errs.Valid())
	assert.Empty(t, errs)
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SpeakerProposal)
		want   ValidationErrors
	}{
		{
			name:   "blank name",
			mutate: func(p *SpeakerProposal) { p.Name = "   " },
			want:   ValidationErrors{"name": "Missing name"},
		},
		{
			name:   "invalid email",
			mutate: func(p *SpeakerProposal) { p.Email = "not-an-email" },
			want:   ValidationErrors{"email": "Invalid email"},
		},
		{
			name:   "missing title",
			mutate: func(p *SpeakerProposal) { p.Title = "" },
			want:   ValidationErrors{"title": "Missing title"},
		},
		{
			name:   "short abstract",
			mutate: func(p *SpeakerProposal) { p.Abstract = "too short" },
			want:   ValidationErrors{"abstract": "Abstract too short (>=50 chars)"},
		},
		{
			name:   "blank bio",
			mutate: func(p *SpeakerProposal) { p.Bio = "\n\t" },
			want:   ValidationErrors{"bio": "Missing bio"},
		},
		{
			name:   "no consent",
			mutate: func(p *SpeakerProposal) { p.Consent = false },
			want:   ValidationErrors{"consent": "Consent required"},
		},
		{
			name: "several failures at once",
			mutate: func(p *SpeakerProposal) {
				p.Name = ""
				p.Email = ""
				p.Consent = false
			},
			want: ValidationErrors{
				"name":    "Missing name",
				"email":   "Invalid email",
				"consent": "Consent required",
			},
		},
		{
			name: "zero value proposal",
			mutate: func(p *SpeakerProposal) {
				*p = SpeakerProposal{}
			},
			want: ValidationErrors{
				"name":     "Missing name",
				"email":    "Invalid email",
				"title":    "Missing title",
				"abstract": "Abstract too short (>=50 chars)",
				"bio":      "Missing bio",
				"consent":  "Consent required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProposal()
			tt.mutate(&p)
			if diff := cmp.Diff(tt.want, Validate(p)); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_OptionalFieldsNeverFail(t *testing.T) {
	p := validProposal()
	p.Level = "Expert"
	p.Duration = "90"
	p.PreferredDate = "someday"
	p.Organization = ""
	p.Links = "not a url"

	assert.Empty(t, Validate(p))
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"jane.doe+talks@sub.example.org", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a b@c.d", false},
		{"a@@b.co", false},
		{"@b.co", false},
		{"", false},
		{"jane\u00a0doe@example.com", false},
		{"jane\vdoe@example.com", false},
		{"jane\u2003@example.com", false},
		{"jane@example.com\u2028", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			p := validProposal()
			p.Email = tt.email
			_, failed := Validate(p)["email"]
			assert.Equal(t, tt.valid, !failed)
		})
	}
}

func TestValidate_AbstractBoundary(t *testing.T) {
	p := validProposal()

	p.Abstract = "  " + strings.Repeat("x", MinAbstractLength-1) + "\n"
	assert.Contains(t, Validate(p), "abstract")

	p.Abstract = "  " + strings.Repeat("x", MinAbstractLength) + "\n"
	assert.NotContains(t, Validate(p), "abstract")

	// Characters, not bytes.
	p.Abstract = strings.Repeat("é", MinAbstractLength)
	assert.NotContains(t, Validate(p), "abstract")
}

package proposal

import (
	"strings"
	"time"
)

// Meta carries what the server knows about a submission besides its content.
type Meta struct {
	ReceivedAt time.Time
	SourceAddr string // empty when unknown
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// IssueTitle renders the one-line issue title: the talk title with line breaks
// collapsed, followed by the speaker's first name when known.
func IssueTitle(p SpeakerProposal) string {
	title := lineBreaks.Replace(strings.TrimSpace(p.Title))
	if first := p.FirstName(); first != "" {
		return title + " — " + first
	}
	return title
}

// IssueBody renders the markdown issue body for a proposal.
func IssueBody(p SpeakerProposal, meta Meta) string {
	var b strings.Builder

	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	field := func(label, value string) {
		line("**" + label + ":** " + value)
	}
	optional := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			field(label, v)
		}
	}

	line("## Speaker proposal submitted via website")
	line("")
	field("Name", orDash(p.Name))
	field("Email", orDash(p.Email))
	optional("Organization", p.Organization)
	field("Talk title", orDash(p.Title))
	optional("Level", string(p.Level))
	optional("Duration (mins)", string(p.Duration))
	optional("Preferred date", p.PreferredDate)
	optional("Equipment / notes", p.Equipment)
	optional("Links", p.Links)
	line("")
	line("## Abstract")
	line("")
	line(orDash(p.Abstract))
	line("")
	line("## Speaker bio")
	line("")
	line(orDash(p.Bio))
	line("")
	line("---")
	b.WriteString("*Received " + meta.ReceivedAt.UTC().Format(time.RFC1123) + "*")
	if addr := strings.TrimSpace(meta.SourceAddr); addr != "" {
		b.WriteString("\n*Submitted from IP: " + addr + "*")
	}

	return b.String()
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

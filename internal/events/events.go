// Package events serves the meetup's static event catalog. The catalog is
// compiled into the binary and read-only at runtime.
package events

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CommunityPage is where RSVPs go when an event has no dedicated link.
const CommunityPage = "https://community.cncf.io/cloud-native-kampala/"

//go:embed assets/events.json
var embeddedCatalog []byte

// Status is the lifecycle state of an event.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusPast     Status = "past"
	StatusOngoing  Status = "ongoing"
)

// ParseStatus accepts upcoming, past or ongoing, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusUpcoming, StatusPast, StatusOngoing:
		return st, nil
	default:
		return "", fmt.Errorf("unknown event status %q", s)
	}
}

// Speaker is a person presenting at an event.
type Speaker struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Event is one catalog record.
type Event struct {
	ID              string    `json:"id" validate:"required"`
	Title           string    `json:"title" validate:"required"`
	Date            string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string    `json:"time,omitempty"`
	Location        string    `json:"location,omitempty"`
	Description     string    `json:"description" validate:"required"`
	FullDescription string    `json:"fullDescription,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	RSVPURL         string    `json:"rsvpUrl,omitempty"`
	Speakers        []Speaker `json:"speakers,omitempty" validate:"dive"`
	SlidesURL       string    `json:"slidesUrl,omitempty"`
	RecordingURL    string    `json:"recordingUrl,omitempty"`
	AttendeeCount   int       `json:"attendeeCount,omitempty" validate:"gte=0"`
	Tags            []string  `json:"tags,omitempty"`
	Status          Status    `json:"status" validate:"oneof=upcoming past ongoing"`
}

// StartDate parses Date as a calendar day.
func (e Event) StartDate() (time.Time, error) {
	return time.Parse("2006-01-02", e.Date)
}

// FormattedDate renders the date as "Sat, Jun 15, 2024", or the raw value if
// it does not parse.
func (e Event) FormattedDate() string {
	d, err := e.StartDate()
	if err != nil {
		return e.Date
	}
	return d.Format("Mon, Jan 2, 2006")
}

// RSVPLink returns the event's RSVP URL, falling back to the community page.
func (e Event) RSVPLink() string {
	if e.RSVPURL != "" {
		return e.RSVPURL
	}
	return CommunityPage
}

// RecordingKind tells the site how to embed a recording.
type RecordingKind string

const (
	RecordingYouTube     RecordingKind = "youtube"
	RecordingGoogleDrive RecordingKind = "google_drive"
	RecordingOther       RecordingKind = "other"
)

// RecordingKind classifies RecordingURL by host.
func (e Event) RecordingKind() RecordingKind {
	switch {
	case strings.Contains(e.RecordingURL, "youtube.com"), strings.Contains(e.RecordingURL, "youtu.be"):
		return RecordingYouTube
	case strings.Contains(e.RecordingURL, "drive.google.com"):
		return RecordingGoogleDrive
	default:
		return RecordingOther
	}
}

var reYouTube = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)

// YouTubeID extracts a video id from a bare 11-character id or a watch,
// youtu.be or embed URL.
func YouTubeID(s string) (string, bool) {
	if len(s) == 11 && !strings.Contains(s, "/") {
		return s, true
	}
	if m := reYouTube.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}

// EmbedURL returns an embeddable player URL for YouTube recordings.
func (e Event) EmbedURL() string {
	if id, ok := YouTubeID(e.RecordingURL); ok {
		return "https://www.youtube.com/embed/" + id
	}
	return ""
}

// Catalog is an immutable, validated list of events in file order.
type Catalog struct {
	events []Event
	byID   map[string]int
}

var validate = validator.New()

// Parse decodes and validates a JSON array of events.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var list []Event
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	c := &Catalog{events: list, byID: make(map[string]int, len(list))}
	var errs []error
	for i, e := range list {
		if err := validate.Struct(e); err != nil {
			errs = append(errs, fmt.Errorf("event %d (%q): %w", i, e.ID, err))
			continue
		}
		if prev, dup := c.byID[e.ID]; dup {
			errs = append(errs, fmt.Errorf("event %d: duplicate id %q (first seen at %d)", i, e.ID, prev))
			continue
		}
		c.byID[e.ID] = i
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Open loads the catalog at path, or the embedded one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	return Parse(data)
}

// Len returns the number of events.
func (c *Catalog) Len() int { return len(c.events) }

// All returns every event in catalog order.
func (c *Catalog) All() []Event {
	return append([]Event(nil), c.events...)
}

// ByStatus returns the events with the given status, in catalog order.
func (c *Catalog) ByStatus(s Status) []Event {
	out := []Event{}
	for _, e := range c.events {
		if e.Status == s {
			out = append(out, e)
		}
	}
	return out
}

// Find looks an event up by id.
func (c *Catalog) Find(id string) (Event, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Event{}, false
	}
	return c.events[i], true
}

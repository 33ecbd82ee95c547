// internal/diary/fragment.go
//
// Diary fragments: one entry per visited itinerary node. The fragment view
// never mutates these directly; edits round-trip through ApplyEdit so the
// owner decides what is persisted.

package diary

import (
	"regexp"
	"strings"
)

// Photo is one candidate image attached to a fragment. Optional metadata is
// modeled explicitly instead of riding on an untyped bag.
type Photo struct {
	URL            string `yaml:"url"`
	IsAIGenerated  bool   `yaml:"ai_generated,omitempty"`
	VisionAnalysis string `yaml:"vision_analysis,omitempty"`
	AIOrientation  string `yaml:"ai_orientation,omitempty"`
}

// Fragment is a single diary entry tied to an itinerary node.
type Fragment struct {
	ID        string   `yaml:"id"`
	NodeID    string   `yaml:"node_id"`
	NodeName  string   `yaml:"node_name"`
	Content   string   `yaml:"content"`
	MoodEmoji string   `yaml:"mood,omitempty"`
	Weather   string   `yaml:"weather,omitempty"`
	TimeRange string   `yaml:"time_range,omitempty"`
	TextNotes []string `yaml:"text_notes,omitempty"`
	Photos    []Photo  `yaml:"photos,omitempty"`
	IsEdited  bool     `yaml:"is_edited,omitempty"`
	Status    string   `yaml:"status,omitempty"`
}

// UserPhotos returns the photos the traveler took themselves, in order.
func (f *Fragment) UserPhotos() []Photo {
	var photos []Photo
	for _, p := range f.Photos {
		if !p.IsAIGenerated {
			photos = append(photos, p)
		}
	}
	return photos
}

// AIPhoto returns the fallback AI-generated photo, if any. Only the first one
// is ever displayed.
func (f *Fragment) AIPhoto() (Photo, bool) {
	for _, p := range f.Photos {
		if p.IsAIGenerated {
			return p, true
		}
	}
	return Photo{}, false
}

// MainPhoto selects the photo for primary display: user photos always win
// over the AI fallback.
func (f *Fragment) MainPhoto() (Photo, bool) {
	if user := f.UserPhotos(); len(user) > 0 {
		return user[0], true
	}
	return f.AIPhoto()
}

// HasPhoto reports whether any photo source exists at all.
func (f *Fragment) HasPhoto() bool {
	return len(f.Photos) > 0
}

// ApplyEdit replaces content and mood, marking the fragment edited. Callers
// decide whether anything actually changed before invoking this.
func (f *Fragment) ApplyEdit(content, mood string) {
	f.Content = content
	f.MoodEmoji = mood
	f.IsEdited = true
}

// AppendNote adds one text note to the fragment.
func (f *Fragment) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	f.TextNotes = append(f.TextNotes, note)
}

var noteTimestampRe = regexp.MustCompile(`^\[\d{1,2}:\d{2}\]\s*`)

// StripNoteTimestamp removes the leading "[hh:mm]" capture prefix some notes
// carry, so quote blocks read as prose.
func StripNoteTimestamp(note string) string {
	return noteTimestampRe.ReplaceAllString(note, "")
}

// QuoteLines returns all text notes with timestamp prefixes stripped,
// dropping notes that were nothing but a timestamp.
func (f *Fragment) QuoteLines() []string {
	var lines []string
	for _, note := range f.TextNotes {
		stripped := strings.TrimSpace(StripNoteTimestamp(note))
		if stripped == "" {
			continue
		}
		lines = append(lines, stripped)
	}
	return lines
}

// TimeRangeParts is the display decomposition of a fragment time range. When
// the raw string does not match the expected pattern, Raw carries it verbatim
// and the derived parts stay empty.
type TimeRangeParts struct {
	Raw   string
	Date  string
	Clock string
}

var timeRangeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{1,2}:\d{2}(?:\s*[-–]\s*\d{1,2}:\d{2})?)$`)

// ParseTimeRange splits "2024-05-01 09:00-11:30" into date and clock parts.
// Malformed strings never error; they display as-is.
func ParseTimeRange(s string) TimeRangeParts {
	raw := strings.TrimSpace(s)
	parts := TimeRangeParts{Raw: raw}
	if m := timeRangeRe.FindStringSubmatch(raw); m != nil {
		parts.Date = m[1]
		parts.Clock = m[2]
	}
	return parts
}

// Fragment status values that earn a badge.
const (
	StatusChanged    = "changed"
	StatusUnrealized = "unrealized"
)

// StatusBadge maps a node-level status to its badge label. Anything outside
// the two known states renders no badge.
func StatusBadge(status string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusChanged:
		return "已变更", true
	case StatusUnrealized:
		return "未实现", true
	}
	return "", false
}

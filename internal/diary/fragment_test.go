package diary

import (
	"testing"
)

func TestMainPhotoPrefersUserPhotos(t *testing.T) {
	frag := &Fragment{Photos: []Photo{
		{URL: "ai.jpg", IsAIGenerated: true},
		{URL: "mine-1.jpg"},
		{URL: "mine-2.jpg"},
	}}
	main, ok := frag.MainPhoto()
	if !ok || main.URL != "mine-1.jpg" {
		t.Fatalf("user photo must win over AI photo, got %+v", main)
	}
	if got := len(frag.UserPhotos()); got != 2 {
		t.Fatalf("expected 2 user photos, got %d", got)
	}
}

func TestMainPhotoFallsBackToAI(t *testing.T) {
	frag := &Fragment{Photos: []Photo{{URL: "ai.jpg", IsAIGenerated: true}}}
	main, ok := frag.MainPhoto()
	if !ok || main.URL != "ai.jpg" {
		t.Fatalf("expected AI fallback, got %+v ok=%v", main, ok)
	}
	empty := &Fragment{}
	if _, ok := empty.MainPhoto(); ok {
		t.Fatal("no photos must yield no main photo")
	}
}

func TestStripNoteTimestamp(t *testing.T) {
	cases := []struct{ in, want string }{
		{"[09:15] 看到了雪山", "看到了雪山"},
		{"[9:05]紧凑写法", "紧凑写法"},
		{"没有时间戳", "没有时间戳"},
		{"[25:99] 仍然剥离", "仍然剥离"},
		{"中间 [09:15] 不剥离", "中间 [09:15] 不剥离"},
	}
	for _, tc := range cases {
		if got := StripNoteTimestamp(tc.in); got != tc.want {
			t.Errorf("StripNoteTimestamp(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQuoteLinesDropEmptyNotes(t *testing.T) {
	frag := &Fragment{TextNotes: []string{"[09:15] 看到了雪山", "[10:00]", "  "}}
	lines := frag.QuoteLines()
	if len(lines) != 1 || lines[0] != "看到了雪山" {
		t.Fatalf("unexpected quote lines: %v", lines)
	}
}

func TestParseTimeRange(t *testing.T) {
	parts := ParseTimeRange("2024-05-01 09:00-11:30")
	if parts.Date != "2024-05-01" || parts.Clock != "09:00-11:30" {
		t.Fatalf("unexpected parts: %+v", parts)
	}
	malformed := ParseTimeRange("五月一日上午")
	if malformed.Raw != "五月一日上午" || malformed.Date != "" || malformed.Clock != "" {
		t.Fatalf("malformed range must keep raw verbatim with empty parts, got %+v", malformed)
	}
}

func TestStatusBadge(t *testing.T) {
	if label, ok := StatusBadge("changed"); !ok || label != "已变更" {
		t.Fatalf("changed badge wrong: %q %v", label, ok)
	}
	if label, ok := StatusBadge("unrealized"); !ok || label != "未实现" {
		t.Fatalf("unrealized badge wrong: %q %v", label, ok)
	}
	if _, ok := StatusBadge("visited"); ok {
		t.Fatal("unknown status must render no badge")
	}
}

func TestAppendNoteIgnoresBlank(t *testing.T) {
	frag := &Fragment{}
	frag.AppendNote("   ")
	frag.AppendNote("[12:00] 午餐")
	if len(frag.TextNotes) != 1 {
		t.Fatalf("expected one note, got %v", frag.TextNotes)
	}
}

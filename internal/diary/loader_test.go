package diary

import (
	"testing"
)

func TestLoadMissingBookIsEmpty(t *testing.T) {
	book, err := Load(t.TempDir(), "lhasa-5d")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if book.ItineraryID != "lhasa-5d" || len(book.Fragments) != 0 {
		t.Fatalf("expected empty book, got %+v", book)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	book := &Book{
		ItineraryID: "lhasa-5d",
		Fragments: []*Fragment{{
			NodeID:    "n-potala",
			NodeName:  "布达拉宫",
			Content:   "红宫白宫都走完了。",
			TimeRange: "2024-05-01 09:00-11:30",
			Photos:    []Photo{{URL: "potala.jpg"}},
		}},
	}
	if err := Save(dir, book); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := Load(dir, "lhasa-5d")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Fragments) != 1 {
		t.Fatalf("expected one fragment, got %d", len(reloaded.Fragments))
	}
	frag := reloaded.Fragments[0]
	if frag.ID == "" {
		t.Fatal("fragment id must be assigned on load")
	}
	if frag.Content != "红宫白宫都走完了。" {
		t.Fatalf("content lost: %q", frag.Content)
	}
	if got, ok := reloaded.ForNode("n-potala"); !ok || got != frag {
		t.Fatal("ForNode lookup failed")
	}
	if _, ok := reloaded.ForNode("missing"); ok {
		t.Fatal("ForNode must miss unknown node ids")
	}
}

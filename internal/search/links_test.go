package search

import (
	"net/url"
	"strings"
	"testing"
)

func TestKeyword(t *testing.T) {
	if got := Keyword("拉萨", "布达拉宫", false); got != "拉萨 布达拉宫" {
		t.Fatalf("keyword: %q", got)
	}
	if got := Keyword("拉萨", "布达拉宫", true); got != "拉萨 布达拉宫 攻略" {
		t.Fatalf("guide keyword: %q", got)
	}
	if got := Keyword("  ", "布达拉宫", false); got != "布达拉宫" {
		t.Fatalf("blank destination must be dropped: %q", got)
	}
}

func TestMapURLEncodesQueryAndCity(t *testing.T) {
	raw := MapURL("拉萨", "拉萨", "布达拉宫")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("map url does not parse: %v", err)
	}
	if got := parsed.Query().Get("query"); got != "拉萨 布达拉宫" {
		t.Fatalf("query param: %q", got)
	}
	if got := parsed.Query().Get("city"); got != "拉萨" {
		t.Fatalf("city param: %q", got)
	}
	if strings.Contains(raw, "布达拉宫") {
		t.Fatal("raw URL must be percent-encoded")
	}
}

func TestWebURLGuideSuffix(t *testing.T) {
	parsed, err := url.Parse(WebURL("拉萨", "八廓街", true))
	if err != nil {
		t.Fatalf("web url does not parse: %v", err)
	}
	if got := parsed.Query().Get("q"); got != "拉萨 八廓街 攻略" {
		t.Fatalf("q param: %q", got)
	}
}

package trip

import (
	"testing"
)

func TestPartitionSortsWithinDay(t *testing.T) {
	nodes := []TravelNode{
		{ID: "a", DayIndex: 1, Order: 3, Name: "布达拉宫"},
		{ID: "b", DayIndex: 1, Order: 1, Name: "大昭寺"},
		{ID: "c", DayIndex: 2, Order: 1, Name: "纳木错"},
	}
	days := Partition(nodes)
	if len(days[1]) != 2 {
		t.Fatalf("expected 2 nodes on day 1, got %d", len(days[1]))
	}
	if days[1][0].ID != "b" || days[1][1].ID != "a" {
		t.Fatalf("day 1 order wrong: %s, %s", days[1][0].ID, days[1][1].ID)
	}
	if len(days[2]) != 1 || days[2][0].ID != "c" {
		t.Fatalf("day 2 partition wrong: %+v", days[2])
	}
}

func TestPartitionIsStableForEqualOrder(t *testing.T) {
	nodes := []TravelNode{
		{ID: "first", DayIndex: 1, Order: 5, Name: "早餐"},
		{ID: "second", DayIndex: 1, Order: 5, Name: "午餐"},
	}
	days := Partition(nodes)
	if days[1][0].ID != "first" || days[1][1].ID != "second" {
		t.Fatalf("equal orders must keep list position, got %s then %s", days[1][0].ID, days[1][1].ID)
	}
}

func TestPartitionFloorsDayAtOne(t *testing.T) {
	days := Partition([]TravelNode{{ID: "x", DayIndex: 0, Order: 1, Name: "机场"}})
	if len(days[1]) != 1 {
		t.Fatalf("day 0 node should land on day 1, got %v", days)
	}
}

func TestTotalDaysSpanned(t *testing.T) {
	it := Itinerary{TotalDays: 2, Nodes: []TravelNode{{DayIndex: 4}}}
	if got := it.TotalDaysSpanned(); got != 4 {
		t.Fatalf("expected node days to win, got %d", got)
	}
	it = Itinerary{TotalDays: 3, Nodes: []TravelNode{{DayIndex: 1}}}
	if got := it.TotalDaysSpanned(); got != 3 {
		t.Fatalf("expected declared total to win, got %d", got)
	}
	it = Itinerary{}
	if got := it.TotalDaysSpanned(); got != 1 {
		t.Fatalf("empty itinerary must still span one day, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{45, "45分钟"},
		{59, "59分钟"},
		{60, "1小时"},
		{90, "1h30m"},
		{120, "2小时"},
		{135, "2h15m"},
		{0, ""},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestKeyTagsSkipSentinel(t *testing.T) {
	node := TravelNode{TicketInfo: NotApplicable, PriceInfo: "人均80元"}
	tags := KeyTags(node)
	if len(tags) != 1 || tags[0] != "人均80元" {
		t.Fatalf("sentinel must be filtered, got %v", tags)
	}
	node = TravelNode{TicketInfo: "门票200元", PriceInfo: "含讲解"}
	if tags := KeyTags(node); len(tags) != 2 {
		t.Fatalf("expected two tags, got %v", tags)
	}
	if tags := KeyTags(TravelNode{}); len(tags) != 0 {
		t.Fatalf("blank info must yield no tags, got %v", tags)
	}
}

func TestVisualFallsBackToAttraction(t *testing.T) {
	known := VisualFor(TypeHotel)
	if known.Label != "住宿" {
		t.Fatalf("unexpected hotel visual: %+v", known)
	}
	fallback := VisualFor(NodeType("spaceport"))
	if fallback != VisualFor(TypeAttraction) {
		t.Fatalf("unknown type must use the attraction visual, got %+v", fallback)
	}
}

func TestUpdateNode(t *testing.T) {
	it := Itinerary{Nodes: []TravelNode{{ID: "n1", Name: "旧名"}}}
	if !it.UpdateNode("n1", FieldName, "新名") {
		t.Fatal("expected update to apply")
	}
	if it.Nodes[0].Name != "新名" {
		t.Fatalf("name not updated: %q", it.Nodes[0].Name)
	}
	if it.UpdateNode("missing", FieldName, "x") {
		t.Fatal("unknown id must not update")
	}
	if it.UpdateNode("n1", Field("mood"), "x") {
		t.Fatal("unknown field must not update")
	}
}

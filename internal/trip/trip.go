// internal/trip/trip.go
//
// Core itinerary model: a trip is a flat list of scheduled nodes, each tagged
// with a day and an order within that day. The board view renders one day at
// a time, so everything here is derivation over that flat list.

package trip

import (
	"fmt"
	"sort"
	"strings"
)

// NodeType classifies a scheduled stop.
type NodeType string

const (
	TypeTransport  NodeType = "transport"
	TypeRestaurant NodeType = "restaurant"
	TypeAttraction NodeType = "attraction"
	TypeHotel      NodeType = "hotel"
)

// Field names a node attribute that can be edited in place on the board.
type Field string

const (
	FieldName          Field = "name"
	FieldDescription   Field = "description"
	FieldScheduledTime Field = "scheduledTime"
)

// NotApplicable is the sentinel used in ticket/price fields for stops where
// the concept does not apply (a walk has no ticket). It is never rendered.
const NotApplicable = "不适用"

// TravelNode is one scheduled stop or activity in an itinerary.
type TravelNode struct {
	ID              string   `yaml:"id"`
	DayIndex        int      `yaml:"day"`
	Order           int      `yaml:"order"`
	Type            NodeType `yaml:"type"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description,omitempty"`
	ScheduledTime   string   `yaml:"scheduled_time,omitempty"`
	TransportMode   string   `yaml:"transport_mode,omitempty"`
	DurationMinutes int      `yaml:"duration_minutes,omitempty"`
	TicketInfo      string   `yaml:"ticket_info,omitempty"`
	PriceInfo       string   `yaml:"price_info,omitempty"`
	Status          string   `yaml:"status,omitempty"`
	Tips            string   `yaml:"tips,omitempty"`
}

// Itinerary is a destination plus its flat node list. Nodes are only ever
// mutated through UpdateNode so the owner controls every write.
type Itinerary struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Destination string       `yaml:"destination"`
	City        string       `yaml:"city,omitempty"`
	TotalDays   int          `yaml:"total_days"`
	Nodes       []TravelNode `yaml:"nodes"`
}

// Partition groups nodes by day, each day sorted by Order ascending. The sort
// is stable so equal orders keep their list position.
func Partition(nodes []TravelNode) map[int][]TravelNode {
	days := make(map[int][]TravelNode)
	for _, node := range nodes {
		day := node.DayIndex
		if day < 1 {
			day = 1
		}
		days[day] = append(days[day], node)
	}
	for day := range days {
		seq := days[day]
		sort.SliceStable(seq, func(i, j int) bool {
			return seq[i].Order < seq[j].Order
		})
		days[day] = seq
	}
	return days
}

// TotalDaysSpanned returns the day count to render: the declared total or the
// highest day actually present among nodes, whichever is larger, never < 1.
func (it *Itinerary) TotalDaysSpanned() int {
	total := it.TotalDays
	for _, node := range it.Nodes {
		if node.DayIndex > total {
			total = node.DayIndex
		}
	}
	if total < 1 {
		total = 1
	}
	return total
}

// UpdateNode applies a single-field edit keyed by node id. Returns false when
// the id is unknown or the field is not editable.
func (it *Itinerary) UpdateNode(id string, field Field, value string) bool {
	for i := range it.Nodes {
		if it.Nodes[i].ID != id {
			continue
		}
		switch field {
		case FieldName:
			it.Nodes[i].Name = value
		case FieldDescription:
			it.Nodes[i].Description = value
		case FieldScheduledTime:
			it.Nodes[i].ScheduledTime = value
		default:
			return false
		}
		return true
	}
	return false
}

// FieldValue reads the current value of an editable field, used to seed edit
// drafts.
func (n TravelNode) FieldValue(field Field) string {
	switch field {
	case FieldName:
		return n.Name
	case FieldDescription:
		return n.Description
	case FieldScheduledTime:
		return n.ScheduledTime
	}
	return ""
}

// FormatDuration renders a stay length for card display. Minutes under an
// hour stay metric ("45分钟"), whole hours collapse ("2小时"), anything else
// uses the compact mixed form ("1h30m").
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%d分钟", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%d小时", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, rem)
}

// KeyTags picks up to two short tags for a node card, drawn from ticket and
// price info. Blank values and the 不适用 sentinel are skipped.
func KeyTags(n TravelNode) []string {
	var tags []string
	for _, candidate := range []string{n.TicketInfo, n.PriceInfo} {
		value := strings.TrimSpace(candidate)
		if value == "" || value == NotApplicable {
			continue
		}
		tags = append(tags, value)
		if len(tags) == 2 {
			break
		}
	}
	return tags
}

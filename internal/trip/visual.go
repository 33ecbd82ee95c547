package trip

// Visual is the icon/label/color triple a node card uses for its type strip.
// Colors are lipgloss-compatible hex strings.
type Visual struct {
	Icon  string
	Label string
	Color string
}

var nodeVisuals = map[NodeType]Visual{
	TypeTransport:  {Icon: "🚌", Label: "交通", Color: "#5B8DEF"},
	TypeRestaurant: {Icon: "🍜", Label: "美食", Color: "#F7B801"},
	TypeAttraction: {Icon: "🏞", Label: "景点", Color: "#4CAF50"},
	TypeHotel:      {Icon: "🏨", Label: "住宿", Color: "#B07CD8"},
}

// VisualFor maps a node type to its card visual. Unrecognized types render
// with the attraction visual rather than erroring.
func VisualFor(t NodeType) Visual {
	if v, ok := nodeVisuals[t]; ok {
		return v
	}
	return nodeVisuals[TypeAttraction]
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/diary"
	"waypoint/internal/search"
	"waypoint/internal/trip"
)

// nodeEdit is the single editing slot shared by every card on the board. At
// most one exists; starting another edit replaces it, draft and all.
type nodeEdit struct {
	nodeID   string
	field    trip.Field
	original string
}

// boardView renders one day of the itinerary as a stack of node cards with
// in-place editing.
type boardView struct {
	app       *App
	itin      *trip.Itinerary
	days      map[int][]trip.TravelNode
	totalDays int

	activeDay int
	selection int
	expanded  map[string]struct{}

	editing *nodeEdit
	input   textinput.Model

	// onUpdate is the owner's write path; the board never mutates nodes
	// directly.
	onUpdate func(nodeID string, field trip.Field, value string)
}

func newBoardView(app *App, itin *trip.Itinerary) *boardView {
	v := &boardView{
		app:       app,
		itin:      itin,
		activeDay: 1,
		expanded:  map[string]struct{}{},
		onUpdate:  app.handleNodeUpdate,
	}
	v.refresh()
	return v
}

// refresh re-derives the day partition from the owned node list. Pure
// recomputation; selection is clamped, expansion and edit state survive.
func (v *boardView) refresh() {
	v.days = trip.Partition(v.itin.Nodes)
	v.totalDays = v.itin.TotalDaysSpanned()
	if v.activeDay > v.totalDays {
		v.activeDay = v.totalDays
	}
	v.clampSelection()
}

func (v *boardView) activeNodes() []trip.TravelNode {
	return v.days[v.activeDay]
}

func (v *boardView) clampSelection() {
	nodes := v.activeNodes()
	if v.selection >= len(nodes) {
		v.selection = len(nodes) - 1
	}
	if v.selection < 0 {
		v.selection = 0
	}
}

func (v *boardView) currentNode() (trip.TravelNode, bool) {
	nodes := v.activeNodes()
	if len(nodes) == 0 || v.selection >= len(nodes) {
		return trip.TravelNode{}, false
	}
	return nodes[v.selection], true
}

func (v *boardView) capturingInput() bool {
	return v.editing != nil
}

func (v *boardView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.editing != nil {
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return cmd
		}
		return nil
	}

	if v.editing != nil {
		switch keyMsg.String() {
		case "enter":
			v.commitEdit()
			return nil
		case "esc":
			v.cancelEdit()
			return nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case "left", "h":
		v.selectDay(v.activeDay - 1)
	case "right", "l":
		v.selectDay(v.activeDay + 1)
	case "up", "k":
		if v.selection > 0 {
			v.selection--
		}
	case "down", "j":
		if v.selection < len(v.activeNodes())-1 {
			v.selection++
		}
	case "tab", " ":
		v.toggleExpanded()
	case "n":
		v.startEdit(trip.FieldName)
	case "i":
		v.startEdit(trip.FieldDescription)
	case "t":
		v.startEdit(trip.FieldScheduledTime)
	case "enter", "o":
		if node, ok := v.currentNode(); ok {
			return v.app.openNodeFragment(node)
		}
	case "m":
		if node, ok := v.currentNode(); ok {
			v.app.openSearchLink(search.MapURL(v.itin.City, v.itin.Destination, node.Name))
		}
	case "g":
		if node, ok := v.currentNode(); ok {
			v.app.openSearchLink(search.WebURL(v.itin.Destination, node.Name, true))
		}
	}
	return nil
}

// selectDay switches the active day. Only explicit selection moves it; out of
// range requests are ignored.
func (v *boardView) selectDay(day int) {
	if day < 1 || day > v.totalDays || day == v.activeDay {
		return
	}
	v.activeDay = day
	v.selection = 0
}

// toggleExpanded flips the detail region of the selected node. Expansion is
// independent per-node state and never touches the edit slot.
func (v *boardView) toggleExpanded() {
	node, ok := v.currentNode()
	if !ok {
		return
	}
	if _, open := v.expanded[node.ID]; open {
		delete(v.expanded, node.ID)
	} else {
		v.expanded[node.ID] = struct{}{}
	}
}

// startEdit moves the single edit slot onto the selected node's field,
// abandoning any prior uncommitted draft.
func (v *boardView) startEdit(field trip.Field) {
	node, ok := v.currentNode()
	if !ok {
		return
	}
	if v.editing != nil {
		if draft := strings.TrimSpace(v.input.Value()); draft != "" && draft != strings.TrimSpace(v.editing.original) {
			v.app.logWarn("Abandoned draft for node %s field %s", v.editing.nodeID, v.editing.field)
		}
	}
	v.editing = &nodeEdit{
		nodeID:   node.ID,
		field:    field,
		original: node.FieldValue(field),
	}
	input := textinput.New()
	input.SetValue(v.editing.original)
	input.CursorEnd()
	input.Focus()
	v.input = input
}

// commitEdit exits edit mode, invoking the update path only when the trimmed
// value actually changed and is non-empty.
func (v *boardView) commitEdit() {
	edit := v.editing
	if edit == nil {
		return
	}
	v.editing = nil
	value := strings.TrimSpace(v.input.Value())
	if value == "" || value == strings.TrimSpace(edit.original) {
		return
	}
	if v.onUpdate != nil {
		v.onUpdate(edit.nodeID, edit.field, value)
	}
}

// cancelEdit discards the draft; the card falls back to the node's value.
func (v *boardView) cancelEdit() {
	v.editing = nil
}

func (v *boardView) View() string {
	var sections []string
	sections = append(sections, v.renderHeader(), v.renderDayTabs(), "")

	nodes := v.activeNodes()
	if len(nodes) == 0 {
		sections = append(sections, mutedStyle.Render("这一天还没有安排"))
	} else {
		for i, node := range nodes {
			sections = append(sections, v.renderNodeCard(node, i == v.selection))
		}
	}

	sections = append(sections, "",
		hintStyle.Render("←/→ 切换天  ↑/↓ 选择  tab 展开  n/i/t 编辑  enter 日记  m 地图  g 攻略"),
		hintStyle.Render("esc 返回目的地"),
	)
	return strings.Join(sections, "\n")
}

func (v *boardView) renderHeader() string {
	title := v.itin.Title
	if title == "" {
		title = v.itin.Destination
	}
	return titleStyle.Render(fmt.Sprintf("%s · 共%d天 · %d个节点", title, v.totalDays, len(v.itin.Nodes)))
}

func (v *boardView) renderDayTabs() string {
	tabs := make([]string, 0, v.totalDays)
	for day := 1; day <= v.totalDays; day++ {
		label := fmt.Sprintf("第%d天", day)
		if day == v.activeDay {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *boardView) renderNodeCard(node trip.TravelNode, selected bool) string {
	visual := trip.VisualFor(node.Type)
	typeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(visual.Color))

	name := truncate(node.Name, 40)
	if v.editingField(node.ID, trip.FieldName) {
		name = v.input.View()
	}
	line1 := fmt.Sprintf("%s %s %s", visual.Icon, typeStyle.Render(visual.Label), name)
	if badge, ok := diary.StatusBadge(node.Status); ok {
		line1 += " " + badgeStyle.Render("["+badge+"]")
	}

	scheduled := node.ScheduledTime
	if v.editingField(node.ID, trip.FieldScheduledTime) {
		scheduled = v.input.View()
	}
	var meta []string
	if scheduled != "" {
		meta = append(meta, scheduled)
	}
	if d := trip.FormatDuration(node.DurationMinutes); d != "" {
		meta = append(meta, d)
	}
	meta = append(meta, trip.KeyTags(node)...)
	line2 := mutedStyle.Render(strings.Join(meta, " · "))

	lines := []string{line1}
	if strings.TrimSpace(line2) != "" {
		lines = append(lines, line2)
	}
	if _, open := v.expanded[node.ID]; open {
		lines = append(lines, v.renderNodeDetails(node)...)
	}

	content := strings.Join(lines, "\n")
	if selected {
		return selectedCardStyle.Render(content)
	}
	return cardStyle.Render(content)
}

func (v *boardView) renderNodeDetails(node trip.TravelNode) []string {
	var details []string
	description := node.Description
	if v.editingField(node.ID, trip.FieldDescription) {
		description = v.input.View()
	}
	if description != "" {
		details = append(details, quoteStyle.Render(description))
	}
	if node.TransportMode != "" {
		details = append(details, mutedStyle.Render("交通: "+node.TransportMode))
	}
	if node.Tips != "" {
		details = append(details, mutedStyle.Render("提示: "+node.Tips))
	}
	if len(details) == 0 {
		details = append(details, mutedStyle.Render("暂无详情"))
	}
	return details
}

func (v *boardView) editingField(nodeID string, field trip.Field) bool {
	return v.editing != nil && v.editing.nodeID == nodeID && v.editing.field == field
}

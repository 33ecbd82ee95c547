// internal/tui/app.go
//
// This is the main TUI for waypoint. It uses bubbletea, which follows The
// Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/config"
	"waypoint/internal/diary"
	"waypoint/internal/logbook"
	"waypoint/internal/search"
	"waypoint/internal/trip"
)

// appState represents which "screen" we're on.
type appState int

const (
	statePicker   appState = iota // Destination cards
	stateBoard                    // Day-partitioned itinerary board
	stateFragment                 // Diary fragment for one node
)

// ItineraryLoader resolves the itinerary behind a destination card.
type ItineraryLoader func(cfg *config.Config, ref config.DestinationRef) (trip.Itinerary, error)

// DiaryLoader resolves the diary book for an itinerary.
type DiaryLoader func(cfg *config.Config, itineraryID string) (*diary.Book, error)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithItineraryLoader overrides how destination cards resolve their trip.
func WithItineraryLoader(loader ItineraryLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.tripLoader = loader
		}
	}
}

// WithDiaryLoader overrides how diary books are loaded.
func WithDiaryLoader(loader DiaryLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.diaryLoader = loader
		}
	}
}

// WithLinkOpener overrides the browser opener, used by tests to capture URLs.
func WithLinkOpener(open func(string) error) AppOption {
	return func(a *App) {
		if open != nil {
			a.openLink = open
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	logbook *logbook.Logbook

	tripLoader  ItineraryLoader
	diaryLoader DiaryLoader
	openLink    func(string) error

	picker    list.Model
	itinerary *trip.Itinerary
	tripPath  string
	book      *diary.Book

	board    *boardView
	fragment *fragmentView

	width  int
	height int

	statusMsg     string
	lastLogStatus string
}

// destinationItem implements list.Item for destination cards.
type destinationItem struct {
	ref config.DestinationRef
}

func (i destinationItem) Title() string {
	if i.ref.City != "" && i.ref.City != i.ref.Name {
		return fmt.Sprintf("%s · %s", i.ref.Name, i.ref.City)
	}
	return i.ref.Name
}
func (i destinationItem) Description() string { return fmt.Sprintf("行程: %s", i.ref.Trip) }
func (i destinationItem) FilterValue() string { return i.ref.Name + " " + i.ref.ID }

// NewApp creates a new App instance rooted at baseDir.
func NewApp(baseDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(baseDir)
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.LogsDir(), "travel.log")
	lb, err := logbook.New(logPath)
	if err == nil {
		lb.Info("Session opened · %d destination(s) configured", len(cfg.Destinations()))
	}

	picker := list.New(buildDestinationItems(cfg), list.NewDefaultDelegate(), 0, 0)
	picker.Title = "✈ 选择目的地"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)

	app := &App{
		state:       statePicker,
		config:      cfg,
		logbook:     lb,
		tripLoader:  defaultItineraryLoader,
		diaryLoader: defaultDiaryLoader,
		openLink:    search.Open,
		picker:      picker,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.preselectDefault()
	return app, nil
}

func buildDestinationItems(cfg *config.Config) []list.Item {
	refs := cfg.Destinations()
	items := make([]list.Item, 0, len(refs))
	for _, ref := range refs {
		items = append(items, destinationItem{ref: ref})
	}
	return items
}

func (a *App) preselectDefault() {
	target := strings.TrimSpace(a.config.DefaultDestination())
	if target == "" {
		return
	}
	for idx, item := range a.picker.Items() {
		card, ok := item.(destinationItem)
		if ok && strings.EqualFold(card.ref.ID, target) {
			a.picker.Select(idx)
			return
		}
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

func (a *App) setStatus(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	a.statusMsg = message
	if message != a.lastLogStatus {
		a.lastLogStatus = message
		a.logInfo(message)
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// capturingInput reports whether the active screen owns the keyboard, so
// global shortcuts must stand down.
func (a *App) capturingInput() bool {
	switch a.state {
	case stateBoard:
		return a.board != nil && a.board.capturingInput()
	case stateFragment:
		return a.fragment != nil && a.fragment.capturingInput()
	}
	return false
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturingInput() {
			switch key {
			case "q":
				if a.state == statePicker {
					return a, tea.Quit
				}
			case "esc":
				return a.goBack()
			case "enter":
				if a.state == statePicker {
					return a.handleDestinationSelection()
				}
			}
		}
	}

	var cmds []tea.Cmd
	switch a.state {
	case statePicker:
		var pickerCmd tea.Cmd
		a.picker, pickerCmd = a.picker.Update(msg)
		if pickerCmd != nil {
			cmds = append(cmds, pickerCmd)
		}
	case stateBoard:
		if a.board != nil {
			if cmd := a.board.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case stateFragment:
		if a.fragment != nil {
			if cmd := a.fragment.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// goBack pops one screen: fragment -> board -> picker.
func (a *App) goBack() (tea.Model, tea.Cmd) {
	switch a.state {
	case stateFragment:
		a.state = stateBoard
		a.fragment = nil
	case stateBoard:
		a.state = statePicker
		a.board = nil
		a.itinerary = nil
		a.book = nil
		a.logInfo("Returned to destination picker")
	}
	return a, nil
}

// handleDestinationSelection loads the selected destination's trip and diary
// and enters the board.
func (a *App) handleDestinationSelection() (tea.Model, tea.Cmd) {
	item, ok := a.picker.SelectedItem().(destinationItem)
	if !ok {
		return a, nil
	}
	ref := item.ref
	itin, err := a.tripLoader(a.config, ref)
	if err != nil {
		a.setStatus(fmt.Sprintf("行程加载失败: %v", err))
		a.logError("Load itinerary %s: %v", ref.ID, err)
		return a, nil
	}
	book, err := a.diaryLoader(a.config, itin.ID)
	if err != nil {
		a.setStatus(fmt.Sprintf("日记加载失败: %v", err))
		a.logError("Load diary %s: %v", itin.ID, err)
		return a, nil
	}
	a.itinerary = &itin
	if path, err := trip.FindFile(a.config.TripsDir(), ref.Trip); err == nil {
		a.tripPath = path
	} else {
		a.tripPath = filepath.Join(a.config.TripsDir(), itin.ID+".yaml")
	}
	a.book = book
	a.board = newBoardView(a, a.itinerary)
	a.state = stateBoard
	if err := a.config.SetDefaultDestination(ref.ID); err != nil {
		a.logWarn("Persist default destination: %v", err)
	}
	a.logInfo("Destination · %s selected (%d nodes)", ref.Name, len(itin.Nodes))
	return a, nil
}

// handleNodeUpdate is the single write path for inline edits: apply to the
// owned itinerary, persist, re-derive the board.
func (a *App) handleNodeUpdate(nodeID string, field trip.Field, value string) {
	if a.itinerary == nil {
		return
	}
	if !a.itinerary.UpdateNode(nodeID, field, value) {
		a.setStatus("未找到要更新的节点")
		return
	}
	if err := trip.Save(a.tripPath, *a.itinerary); err != nil {
		a.setStatus(fmt.Sprintf("保存失败: %v", err))
		a.logError("Save itinerary: %v", err)
		return
	}
	if a.board != nil {
		a.board.refresh()
	}
	a.logInfo("Node %s · %s updated", nodeID, field)
}

// openNodeFragment enters the diary screen for a node, creating an empty
// fragment on first visit.
func (a *App) openNodeFragment(node trip.TravelNode) tea.Cmd {
	if a.book == nil {
		return nil
	}
	frag, ok := a.book.ForNode(node.ID)
	if !ok {
		frag = &diary.Fragment{
			NodeID:    node.ID,
			NodeName:  node.Name,
			TimeRange: node.ScheduledTime,
			Status:    node.Status,
		}
		a.book.Fragments = append(a.book.Fragments, frag)
	}
	a.fragment = newFragmentView(a)
	a.state = stateFragment
	a.logInfo("Diary · opened fragment for %s", node.Name)
	return a.fragment.SetFragment(frag)
}

// handleFragmentEdit persists a committed fragment edit.
func (a *App) handleFragmentEdit(frag *diary.Fragment, content, mood string) {
	frag.ApplyEdit(content, mood)
	a.saveDiary()
	a.logInfo("Diary · fragment %s edited", frag.NodeName)
}

// handleFragmentNote appends a quick note to the active fragment.
func (a *App) handleFragmentNote(frag *diary.Fragment, text string) {
	frag.AppendNote(text)
	a.saveDiary()
}

func (a *App) saveDiary() {
	if a.book == nil {
		return
	}
	if err := diary.Save(a.config.DiaryDir(), a.book); err != nil {
		a.setStatus(fmt.Sprintf("日记保存失败: %v", err))
		a.logError("Save diary: %v", err)
	}
}

// openSearchLink builds and fires an outbound URL, never waiting on it.
func (a *App) openSearchLink(rawURL string) {
	if a.openLink == nil {
		return
	}
	if err := a.openLink(rawURL); err != nil {
		a.setStatus(fmt.Sprintf("打开链接失败: %v", err))
		return
	}
	a.setStatus("已在浏览器打开")
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content string
	switch a.state {
	case statePicker:
		content = a.picker.View()
	case stateBoard:
		if a.board != nil {
			content = a.board.View()
		}
	case stateFragment:
		if a.fragment != nil {
			content = a.fragment.View()
		}
	}
	if strings.TrimSpace(content) == "" {
		content = "没有可显示的内容"
	}

	header := headerStyle.Render("✈ WAYPOINT")
	body := panelStyle.Width(max(24, width-2)).Render(content)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, footerStyle.Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	head := titleStyle.Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func defaultItineraryLoader(cfg *config.Config, ref config.DestinationRef) (trip.Itinerary, error) {
	path, err := trip.FindFile(cfg.TripsDir(), ref.Trip)
	if err != nil {
		return trip.Itinerary{}, err
	}
	return trip.Load(path)
}

func defaultDiaryLoader(cfg *config.Config, itineraryID string) (*diary.Book, error) {
	return diary.Load(cfg.DiaryDir(), itineraryID)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"waypoint/internal/diary"
	"waypoint/internal/photo"
	"waypoint/internal/search"
)

// flipDuration is how long the page-flip marker stays up after the fragment
// changes. Cosmetic only; the content swaps immediately.
const flipDuration = 500 * time.Millisecond

var moodChoices = []string{"😄", "🙂", "😐", "😢", "🤩", "😴"}

// orientationMsg delivers an async probe result. gen ties it to the fragment
// that requested it; stale results are dropped.
type orientationMsg struct {
	gen int
	o   photo.Orientation
}

// flipDoneMsg clears the flip marker for one fragment generation.
type flipDoneMsg struct {
	gen int
}

// fragmentView renders one diary fragment in either the postcard or the
// magazine composition, chosen by main-photo orientation.
type fragmentView struct {
	app  *App
	frag *diary.Fragment

	// gen increments on every fragment change; async messages carrying an
	// older gen are ignored.
	gen         int
	orientation photo.Orientation
	resolved    bool
	photoIdx    int
	flipping    bool

	editing   bool
	draft     textarea.Model
	draftMood string
	moodPick  bool

	addingNote bool
	noteInput  textinput.Model

	probe  func(source string) photo.Orientation
	onEdit func(frag *diary.Fragment, content, mood string)
	onNote func(frag *diary.Fragment, text string)
}

func newFragmentView(app *App) *fragmentView {
	return &fragmentView{
		app:    app,
		probe:  photo.Probe,
		onEdit: app.handleFragmentEdit,
		onNote: app.handleFragmentNote,
	}
}

// SetFragment swaps the displayed fragment and kicks off orientation
// resolution plus the flip marker. Local photo index and edit state reset.
func (v *fragmentView) SetFragment(frag *diary.Fragment) tea.Cmd {
	v.frag = frag
	v.gen++
	v.photoIdx = 0
	v.editing = false
	v.moodPick = false
	v.addingNote = false
	v.flipping = true

	cmds := []tea.Cmd{v.scheduleFlipDone()}

	v.orientation = photo.Unknown
	v.resolved = false
	main, hasPhoto := frag.MainPhoto()
	switch {
	case !hasPhoto:
		v.resolved = true
	default:
		if o, ok := photo.ClassifySync(main); ok {
			v.orientation = o
			v.resolved = true
		} else {
			cmds = append(cmds, v.probeOrientation(main.URL))
		}
	}
	return tea.Batch(cmds...)
}

func (v *fragmentView) scheduleFlipDone() tea.Cmd {
	gen := v.gen
	return tea.Tick(flipDuration, func(time.Time) tea.Msg {
		return flipDoneMsg{gen: gen}
	})
}

// probeOrientation loads the image off the update loop. The message carries
// the generation current at request time.
func (v *fragmentView) probeOrientation(source string) tea.Cmd {
	gen := v.gen
	probe := v.probe
	return func() tea.Msg {
		return orientationMsg{gen: gen, o: probe(source)}
	}
}

func (v *fragmentView) capturingInput() bool {
	return v.editing || v.addingNote
}

func (v *fragmentView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case orientationMsg:
		if m.gen != v.gen {
			return nil
		}
		v.orientation = m.o
		v.resolved = true
		return nil
	case flipDoneMsg:
		if m.gen == v.gen {
			v.flipping = false
		}
		return nil
	case tea.KeyMsg:
		return v.handleKey(m)
	}
	if v.editing {
		var cmd tea.Cmd
		v.draft, cmd = v.draft.Update(msg)
		return cmd
	}
	return nil
}

func (v *fragmentView) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if v.addingNote {
		switch key {
		case "enter":
			v.submitNote()
		case "esc":
			v.addingNote = false
		default:
			var cmd tea.Cmd
			v.noteInput, cmd = v.noteInput.Update(msg)
			return cmd
		}
		return nil
	}

	if v.editing {
		if v.moodPick {
			if idx := moodIndex(key); idx >= 0 {
				v.draftMood = moodChoices[idx]
				v.moodPick = false
				return nil
			}
			switch key {
			case "esc", "ctrl+p":
				v.moodPick = false
				return nil
			case "backspace":
				v.draftMood = ""
				v.moodPick = false
				return nil
			}
			return nil
		}
		switch key {
		case "ctrl+s":
			v.saveEdit()
			return nil
		case "esc":
			v.cancelEdit()
			return nil
		case "ctrl+p":
			v.moodPick = true
			return nil
		}
		var cmd tea.Cmd
		v.draft, cmd = v.draft.Update(msg)
		return cmd
	}

	switch key {
	case "left", "p":
		v.cyclePhoto(-1)
	case "right", "n":
		v.cyclePhoto(1)
	case "e":
		v.startEdit()
	case "a":
		v.startNote()
	case "m":
		if v.frag != nil && v.app.itinerary != nil {
			v.app.openSearchLink(search.MapURL(v.app.itinerary.City, v.app.itinerary.Destination, v.frag.NodeName))
		}
	}
	return nil
}

func moodIndex(key string) int {
	if len(key) != 1 || key[0] < '1' {
		return -1
	}
	idx := int(key[0] - '1')
	if idx >= len(moodChoices) {
		return -1
	}
	return idx
}

// cyclePhoto advances the user-photo index cyclically. With zero or one user
// photo there is nothing to cycle.
func (v *fragmentView) cyclePhoto(delta int) {
	count := len(v.frag.UserPhotos())
	if count <= 1 {
		return
	}
	v.photoIdx = ((v.photoIdx+delta)%count + count) % count
}

// startEdit copies current content and mood into the draft.
func (v *fragmentView) startEdit() {
	draft := textarea.New()
	draft.SetValue(v.frag.Content)
	draft.Focus()
	v.draft = draft
	v.draftMood = v.frag.MoodEmoji
	v.editing = true
	v.moodPick = false
}

// saveEdit commits the draft, invoking the edit callback only when trimmed
// content or mood actually changed. Always exits edit mode and force-closes
// the mood picker.
func (v *fragmentView) saveEdit() {
	content := strings.TrimSpace(v.draft.Value())
	changed := (content != strings.TrimSpace(v.frag.Content) || v.draftMood != v.frag.MoodEmoji)
	if content != "" && changed && v.onEdit != nil {
		v.onEdit(v.frag, content, v.draftMood)
	}
	v.editing = false
	v.moodPick = false
}

// cancelEdit discards the draft without invoking the callback.
func (v *fragmentView) cancelEdit() {
	v.editing = false
	v.moodPick = false
}

func (v *fragmentView) startNote() {
	input := textinput.New()
	input.Placeholder = "记一笔…"
	input.Focus()
	v.noteInput = input
	v.addingNote = true
}

func (v *fragmentView) submitNote() {
	text := strings.TrimSpace(v.noteInput.Value())
	v.addingNote = false
	if text == "" {
		return
	}
	stamped := fmt.Sprintf("[%s] %s", time.Now().Format("15:04"), text)
	if v.onNote != nil {
		v.onNote(v.frag, stamped)
	}
}

// usesPostcard is the layout selection rule: postcard iff the resolved
// orientation is landscape and any photo source exists. Portrait, unknown and
// the no-photo case all route to the magazine layout.
func (v *fragmentView) usesPostcard() bool {
	return v.resolved && v.orientation == photo.Landscape && v.frag.HasPhoto()
}

func (v *fragmentView) View() string {
	if v.frag == nil {
		return ""
	}
	var sections []string
	if v.flipping {
		sections = append(sections, mutedStyle.Render("～ 翻页 ～"))
	}
	if v.editing {
		sections = append(sections, v.renderEditor())
	} else if v.usesPostcard() {
		sections = append(sections, v.renderPostcard())
	} else {
		sections = append(sections, v.renderMagazine())
	}
	if v.addingNote {
		sections = append(sections, v.noteInput.View())
	}
	sections = append(sections, "", v.renderHints())
	return strings.Join(sections, "\n")
}

func (v *fragmentView) renderHints() string {
	if v.editing {
		if v.moodPick {
			return hintStyle.Render("1-6 选择心情  backspace 清除  esc 关闭")
		}
		return hintStyle.Render("ctrl+s 保存  ctrl+p 心情  esc 取消")
	}
	if v.addingNote {
		return hintStyle.Render("enter 添加随手记  esc 取消")
	}
	return hintStyle.Render("←/→ 切换照片  e 编辑  a 随手记  m 地图  esc 返回行程")
}

// renderPostcard is the landscape composition: the photo banner leads, prose
// follows.
func (v *fragmentView) renderPostcard() string {
	frag := v.frag
	var lines []string

	if frag.Weather != "" {
		lines = append(lines, badgeStyle.Render("☁ "+frag.Weather))
	}
	lines = append(lines, v.renderPhotoFrame(true)...)

	parts := diary.ParseTimeRange(frag.TimeRange)
	var metaBits []string
	if frag.NodeName != "" {
		metaBits = append(metaBits, "📍 "+frag.NodeName)
	}
	if parts.Date != "" {
		metaBits = append(metaBits, parts.Date)
	} else if parts.Raw != "" {
		metaBits = append(metaBits, parts.Raw)
	}
	if frag.MoodEmoji != "" {
		metaBits = append(metaBits, frag.MoodEmoji)
	}
	if len(metaBits) > 0 {
		lines = append(lines, mutedStyle.Render(strings.Join(metaBits, " · ")))
	}

	if quotes := frag.QuoteLines(); len(quotes) > 0 {
		lines = append(lines, quoteStyle.Render("「"+strings.Join(quotes, " / ")+"」"))
	}

	lines = append(lines, v.renderTitleLine())
	if prose := dropCap(frag.Content); prose != "" {
		lines = append(lines, prose)
	}
	if frag.IsEdited {
		lines = append(lines, editedStyle.Render("✎ 已修改"))
	}
	return strings.Join(lines, "\n")
}

// renderMagazine is the vertical composition used for portrait, unknown and
// photoless fragments.
func (v *fragmentView) renderMagazine() string {
	frag := v.frag
	var lines []string

	lines = append(lines, v.renderPhotoFrame(false)...)

	if frag.NodeName != "" {
		lines = append(lines, mutedStyle.Render("📍 "+frag.NodeName+"  (m 地图)"))
	}

	title := v.renderTitleLine()
	parts := diary.ParseTimeRange(frag.TimeRange)
	switch {
	case parts.Date != "":
		title += mutedStyle.Render("  " + parts.Date + " " + parts.Clock)
	case parts.Raw != "":
		title += mutedStyle.Render("  " + parts.Raw)
	}
	lines = append(lines, title)

	for _, quote := range frag.QuoteLines() {
		lines = append(lines, quoteStyle.Render("「"+quote+"」"))
	}

	lines = append(lines, mutedStyle.Render("────────────"))
	if prose := dropCap(frag.Content); prose != "" {
		lines = append(lines, prose)
	}
	if frag.IsEdited {
		lines = append(lines, editedStyle.Render("✎ 已修改"))
	}
	return strings.Join(lines, "\n")
}

func (v *fragmentView) renderTitleLine() string {
	title := titleStyle.Render(v.frag.NodeName)
	if badge, ok := diary.StatusBadge(v.frag.Status); ok {
		title += " " + badgeStyle.Render("["+badge+"]")
	}
	title += hintStyle.Render("  (e 编辑)")
	return title
}

// renderPhotoFrame shows the displayed photo as a captioned frame. User
// photos always win over the AI fallback; the postcard variant adds the
// blurred-backdrop banner rows, the magazine variant overlays the seals.
func (v *fragmentView) renderPhotoFrame(postcard bool) []string {
	frag := v.frag
	userPhotos := frag.UserPhotos()

	var current diary.Photo
	var label string
	switch {
	case len(userPhotos) > 0:
		idx := v.photoIdx
		if idx >= len(userPhotos) {
			idx = 0
		}
		current = userPhotos[idx]
		label = filepath.Base(current.URL)
	default:
		ai, ok := frag.AIPhoto()
		if !ok {
			return []string{mutedStyle.Render("▢ 暂无照片")}
		}
		current = ai
		label = filepath.Base(current.URL) + " · AI"
	}

	caption := fmt.Sprintf("🖼 %s (%s)", truncate(label, 36), v.orientationLabel())
	var lines []string
	if postcard {
		lines = append(lines, mutedStyle.Render("░░░░░░░░░░░░░░░░░░░░░░░░"))
		lines = append(lines, caption)
		lines = append(lines, mutedStyle.Render("░░░░░░░░░░░░░░░░░░░░░░░░"))
	} else {
		seals := ""
		if frag.Weather != "" {
			seals += " " + frag.Weather
		}
		if frag.MoodEmoji != "" {
			seals += " " + frag.MoodEmoji
		}
		lines = append(lines, caption+seals)
	}
	if len(userPhotos) > 1 {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("‹ %d/%d ›", v.photoIdx+1, len(userPhotos))))
	}
	return lines
}

func (v *fragmentView) orientationLabel() string {
	if !v.resolved {
		return "…"
	}
	switch v.orientation {
	case photo.Landscape:
		return "横"
	case photo.Portrait:
		return "竖"
	}
	return "?"
}

func (v *fragmentView) renderEditor() string {
	var lines []string
	lines = append(lines, titleStyle.Render("编辑 · "+v.frag.NodeName))
	lines = append(lines, v.draft.View())
	mood := v.draftMood
	if mood == "" {
		mood = "无"
	}
	moodLine := "心情: " + mood
	if v.moodPick {
		var choices []string
		for i, emoji := range moodChoices {
			choices = append(choices, fmt.Sprintf("%d %s", i+1, emoji))
		}
		moodLine += "   " + strings.Join(choices, "  ")
	}
	lines = append(lines, mutedStyle.Render(moodLine))
	return strings.Join(lines, "\n")
}

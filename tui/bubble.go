package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/internal/ui"
	"github.com/pk-services/pks/playlist"
	"github.com/samber/lo"
)

// statefulBubble is the browser model. Playlist operations run one at a
// time; busy guards the playlist while a command is in flight.
type statefulBubble struct {
	state         state
	statesHistory []state
	busy          bool

	keymap *statefulKeymap

	spinnerC  spinner.Model
	entriesC  list.Model
	historyC  list.Model
	helpC     help.Model
	notifier  *ui.Model
	lastError error

	ctx      context.Context
	playlist *playlist.Playlist
	options  *Options

	width, height int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState}, b.state) {
		b.statesHistory = append(b.statesHistory, b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if n := len(b.statesHistory); n > 0 {
		b.setState(b.statesHistory[n-1])
		b.statesHistory = b.statesHistory[:n-1]
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.entriesC.SetSize(listWidth, listHeight)
	b.entriesC.Help.Width = listWidth

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// startLoading marks the playlist busy until the next result message.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.busy = true
	return tea.Batch(b.spinnerC.Tick, b.entriesC.StartSpinner())
}

func (b *statefulBubble) stopLoading() {
	b.busy = false
	b.entriesC.StopSpinner()
}

func newBubble(ctx context.Context, pl *playlist.Playlist, options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:   newStatefulKeymap(),
		notifier: &ui.Model{},
		ctx:      ctx,
		playlist: pl,
		options:  options,
	}

	makeList := func(title string) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(color.Mauve).
			Foreground(color.Mauve).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		listC.Styles.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(color.Purple).Padding(0, 1)
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.entriesC = makeList("Playlist")
	bubble.historyC = makeList("History")

	return &bubble
}

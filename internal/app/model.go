package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/alfazet/amusing/internal/coverart"
	"github.com/alfazet/amusing/internal/data/dispatcher"
	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/keybind"
	"github.com/alfazet/amusing/internal/logging/events"
	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/search"
	"github.com/alfazet/amusing/internal/state"
	"github.com/alfazet/amusing/internal/theme"
	uistate "github.com/alfazet/amusing/internal/ui/state"
	"github.com/alfazet/amusing/internal/view"
)

const defaultStatusTTL = 5 * time.Second

// Settings are the user-tunable parts of the model.
type Settings struct {
	SeekStep   int64
	VolumeStep int8
	SpeedStep  int16
	GroupBy    []string
	QueueTags  []string
	Keymap     keybind.Keymap
	Styles     *theme.Styles
	StatusTTL  time.Duration
}

// DefaultSettings mirrors the defaults of the config file.
func DefaultSettings() Settings {
	return Settings{
		SeekStep:   5,
		VolumeStep: 5,
		SpeedStep:  5,
		GroupBy:    []string{"albumartist", "album"},
		QueueTags:  []string{"tracktitle", "artist", "album"},
		Keymap:     keybind.DefaultKeymap(),
		Styles:     theme.Default(),
		StatusTTL:  defaultStatusTTL,
	}
}

// Submitter accepts requests for the server without blocking.
type Submitter interface {
	Submit(musing.Request)
}

// CoverSubmitter accepts cover-art work without blocking.
type CoverSubmitter interface {
	Submit(coverart.Request)
}

type pane int

const (
	paneGroups pane = iota
	paneSongs
)

func (p pane) String() string {
	if p == paneSongs {
		return "songs"
	}
	return "groups"
}

// Model is the application state machine. It is owned by the consumer
// goroutine; nothing in it is safe for concurrent use.
type Model struct {
	settings Settings
	conn     Submitter
	covers   CoverSubmitter
	now      func() time.Time

	playback musing.State
	queue    state.QueueStore
	library  state.LibraryStore
	dispatch *dispatcher.Dispatcher

	screen view.Screen
	focus  pane

	queueList   *uistate.List
	groupList   *uistate.List
	songList    *uistate.List
	queueSearch *search.Session
	groupSearch *search.Session
	songSearch  *search.Session
	songsOf     int

	resolver    keybind.Resolver
	searchKeys  bool
	width       int
	height      int
	stateQueued bool

	coverID    uint64
	coverLines []string
	coverNote  string

	status      string
	statusErr   bool
	statusUntil time.Time

	done bool
}

// NewModel builds a model that sends requests to conn and cover-art work to
// covers.
func NewModel(settings Settings, conn Submitter, covers CoverSubmitter) *Model {
	defaults := DefaultSettings()
	if settings.Styles == nil {
		settings.Styles = defaults.Styles
	}
	if settings.StatusTTL <= 0 {
		settings.StatusTTL = defaults.StatusTTL
	}
	if settings.Keymap.Normal == nil || settings.Keymap.Search == nil {
		settings.Keymap = defaults.Keymap
	}
	if len(settings.GroupBy) == 0 {
		settings.GroupBy = defaults.GroupBy
	}
	if len(settings.QueueTags) == 0 {
		settings.QueueTags = defaults.QueueTags
	}
	m := &Model{
		settings:    settings,
		conn:        conn,
		covers:      covers,
		now:         time.Now,
		queue:       state.NewQueueStore(),
		library:     state.NewLibraryStore(),
		queueList:   uistate.NewList("queue", "", nil),
		groupList:   uistate.NewList("groups", "", nil),
		songList:    uistate.NewList("songs", "", nil),
		queueSearch: search.NewSession("queue"),
		groupSearch: search.NewSession("groups"),
		songSearch:  search.NewSession("songs"),
		songsOf:     -1,
		coverNote:   "no cover art",
	}
	m.queueList.MultiSelect = true
	m.dispatch = dispatcher.New(&m.playback, m.queue, m.library)
	return m
}

// Init requests the library. State arrives with the first Refresh.
func (m *Model) Init() {
	m.requestLibrary()
}

// Done reports whether the user asked to quit.
func (m *Model) Done() bool {
	return m.done
}

// Close stops every search worker.
func (m *Model) Close() {
	for _, s := range []*search.Session{m.queueSearch, m.groupSearch, m.songSearch} {
		s.Stop()
	}
}

// Handle applies one event. A non-nil error is fatal to the loop.
func (m *Model) Handle(ev event.Event) error {
	switch ev := ev.(type) {
	case event.Keypress:
		m.handleKey(ev.Key)
	case event.Refresh:
		m.handleRefresh()
	case event.Resize:
		m.handleResize(ev.Width, ev.Height)
	case event.Response:
		m.handleResponse(ev.Response)
	case event.CoverArtResize:
		m.handleCover(ev.Result)
	case event.Disconnected:
		events.Loop.Disconnected(ev.Source, ev.Err)
		if ev.Err != nil {
			return fmt.Errorf("%s: %w", ev.Source, ev.Err)
		}
		return fmt.Errorf("%s: %w", ev.Source, errProducerGone)
	default:
		events.Loop.Dropped(event.Name(ev))
	}
	m.syncViewports()
	return nil
}

var errProducerGone = errors.New("event source closed")

func (m *Model) handleRefresh() {
	m.expireStatus()
	if m.stateQueued {
		return
	}
	m.stateQueued = true
	m.submit(musing.StateRequest{})
}

func (m *Model) handleResize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	m.requestCover()
}

func (m *Model) handleResponse(resp musing.Response) {
	if _, ok := resp.Request.(musing.StateRequest); ok {
		m.stateQueued = false
	}
	res := m.dispatch.Handle(resp)
	if res.Err != nil {
		events.Action.Error(res.Err)
		m.setStatus(res.Err.Error(), true)
		return
	}
	if res.Status != "" {
		events.Action.Success(res.Status)
		m.setStatus(res.Status, false)
		if _, ok := resp.Request.(musing.UpdateRequest); ok {
			m.requestLibrary()
		}
	}
	if res.Changes.Has(musing.ChangedQueue) {
		m.syncQueue()
		m.requestMetadata()
	}
	if res.MetadataUpdated {
		m.syncQueue()
	}
	if res.Changes.Has(musing.ChangedCoverArt) {
		m.requestCover()
	}
	if res.LibraryUpdated {
		m.syncLibrary()
	}
}

func (m *Model) handleCover(res coverart.Result) {
	if res.ID != m.coverID {
		return
	}
	if res.Err != nil {
		m.coverLines = nil
		m.coverNote = res.Err.Error()
		return
	}
	m.coverLines = res.Lines
	m.coverNote = ""
}

func (m *Model) submit(req musing.Request) {
	if m.conn == nil {
		return
	}
	m.conn.Submit(req)
}

func (m *Model) requestLibrary() {
	m.submit(musing.SelectRequest{
		GroupBy: m.settings.GroupBy,
		Tags:    []string{"tracknumber", "tracktitle"},
	})
}

func (m *Model) requestMetadata() {
	paths := m.queue.Paths()
	if len(paths) == 0 {
		return
	}
	m.submit(musing.MetadataRequest{Paths: paths})
}

// requestCover hands the current cover to the worker. Results for older
// requests are ignored by id.
func (m *Model) requestCover() {
	m.coverID++
	m.coverLines = nil
	if m.playback.CoverArt == nil {
		m.coverNote = "no cover art"
		return
	}
	w, h := view.CoverSize(m.width, m.height)
	if w <= 0 || h <= 0 || m.covers == nil {
		m.coverNote = "no room for cover art"
		return
	}
	m.coverNote = "loading cover art"
	m.covers.Submit(coverart.Request{ID: m.coverID, Data: *m.playback.CoverArt, Width: w, Height: h})
}

func (m *Model) setStatus(text string, isErr bool) {
	events.App.Status(text)
	m.status = text
	m.statusErr = isErr
	m.statusUntil = m.now().Add(m.settings.StatusTTL)
}

func (m *Model) expireStatus() {
	if m.status == "" || m.now().Before(m.statusUntil) {
		return
	}
	m.status = ""
	m.statusErr = false
	m.statusUntil = time.Time{}
}

func (m *Model) setScreen(s view.Screen) {
	if m.screen == s {
		return
	}
	events.App.Screen(s.String())
	m.screen = s
	if s == view.ScreenCover && m.coverLines == nil {
		m.requestCover()
	}
}

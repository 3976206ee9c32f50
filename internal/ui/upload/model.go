// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/talentdesk/internal/chart"
	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/ui/components"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
	"github.com/jeranaias/talentdesk/internal/upload"
)

// screen is the current step of the upload flow.
type screen int

const (
	screenSelect screen = iota
	screenUploading
	screenResults
	screenHistory
)

// focus is the input that receives typed text on the select screen.
type focus int

const (
	focusPaths focus = iota
	focusJob
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the upload view.
type Options struct {
	// Timeout bounds every server call (default DefaultTimeout).
	Timeout time.Duration

	// OutputDir receives CSV exports and HTML reports.
	OutputDir string

	// ProgressStep and ProgressInterval drive the simulated progress.
	ProgressStep     int
	ProgressInterval time.Duration

	// Markdown renders analyses with glamour.
	Markdown bool

	// Paths are selected on startup.
	Paths []string

	// JobDescription pre-fills the job description.
	JobDescription string

	// Now stamps report file names; nil uses time.Now.
	Now func() time.Time
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the resume upload view.
type Model struct {
	ctrl     *upload.Controller
	client   upload.RankAPI
	theme    *styles.Theme
	keys     KeyMap
	opts     Options
	renderer *components.MarkdownRenderer

	paths    textinput.Model
	job      textarea.Model
	bar      progress.Model
	viewport viewport.Model
	help     help.Model

	screen  screen
	focus   focus
	cursor  int
	width   int
	height  int
	status  string
	failed  bool
	history []model.HistoryEntry

	// run identifies the current upload so stale ticks are ignored.
	run      int
	progress *upload.Progress
}

// New creates an upload view backed by client.
func New(client upload.RankAPI, theme *styles.Theme, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Prompt = "Files: "
	ti.Placeholder = "paths or globs, e.g. ~/cvs/*.pdf"
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Paste the job description here (optional)..."
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.SetValue(opts.JobDescription)
	ta.Blur()

	m := Model{
		ctrl:     upload.NewController(client, opts.OutputDir),
		client:   client,
		theme:    theme,
		keys:     DefaultKeyMap(),
		opts:     opts,
		renderer: components.NewMarkdownRenderer(opts.Markdown, theme.IsDark),
		paths:    ti,
		job:      ta,
		bar:      progress.New(progress.WithGradient(chart.GradientTop, chart.GradientBottom)),
		viewport: viewport.New(80, 20),
		help:     help.New(),
	}
	if len(opts.Paths) > 0 {
		m = m.selectPaths(opts.Paths)
	}
	return m
}

// Controller returns the controller behind the view.
func (m Model) Controller() *upload.Controller {
	return m.ctrl
}

// Status returns the last status line text.
func (m Model) Status() string {
	return m.status
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.paths.Width = msg.Width - 10
		m.job.SetWidth(msg.Width - 4)
		m.bar.Width = msg.Width - 10
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case progressTickMsg:
		if msg.id != m.run || m.screen != screenUploading || m.progress.Done() {
			return m, nil
		}
		m.progress.Tick()
		return m, progressTickCmd(m.run, m.progress.Interval)

	case rankedMsg:
		return m.handleRanked(msg)

	case showResultsMsg:
		if msg.id != m.run || m.screen != screenUploading {
			return m, nil
		}
		m.screen = screenResults
		m.refreshViewport()
		return m, nil

	case csvSavedMsg:
		if msg.err != nil {
			m.setError(upload.DownloadErrorText(msg.err))
		} else {
			m.setInfo("CSV saved to " + msg.path)
		}
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.setError("Report failed: " + msg.err.Error())
		} else {
			m.setInfo("Report saved to " + msg.path)
		}
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.setError(upload.SubmitErrorText(msg.err))
			return m, nil
		}
		m.history = msg.entries
		m.screen = screenHistory
		m.refreshViewport()
		return m, nil
	}

	return m.forward(msg)
}

// forward passes a message to the focused input, or to the viewport on
// the scrolling screens.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == screenResults || m.screen == screenHistory:
		m.viewport, cmd = m.viewport.Update(msg)
	case m.screen != screenSelect:
	case m.focus == focusJob:
		m.job, cmd = m.job.Update(msg)
	default:
		m.paths, cmd = m.paths.Update(msg)
	}
	return m, cmd
}

// handleKey walks the binding table; unmatched keys are forwarded.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, h := range m.keys.handlers() {
		if h.activeOn(m.screen) && key.Matches(msg, h.binding) {
			// Enter inserts a newline while typing the job description.
			if m.focus == focusJob && key.Matches(msg, m.keys.AddFiles) {
				break
			}
			return h.handle(m)
		}
	}
	return m.forward(msg)
}

// handleRanked finishes the progress bar, then shows results after a short
// delay. Failures return to the select screen with the error text.
func (m Model) handleRanked(msg rankedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.run {
		return m, nil
	}
	if msg.err != nil {
		m.screen = screenSelect
		m.setError(upload.SubmitErrorText(msg.err))
		return m, nil
	}
	m.ctrl.Apply(msg.jobDescription, msg.resp)
	m.progress.Finish()
	m.status = ""
	return m, showResultsCmd(m.run)
}

// =============================================================================
// KEY HANDLERS
// =============================================================================

func (m Model) quit() (Model, tea.Cmd) {
	return m, tea.Quit
}

func (m Model) back() (Model, tea.Cmd) {
	if m.screen == screenHistory && m.ctrl.Response() != nil {
		m.screen = screenResults
	} else {
		m.screen = screenSelect
	}
	m.refreshViewport()
	return m, nil
}

func (m Model) switchFocus() (Model, tea.Cmd) {
	if m.focus == focusPaths {
		m.focus = focusJob
		m.paths.Blur()
		return m, m.job.Focus()
	}
	m.focus = focusPaths
	m.job.Blur()
	return m, m.paths.Focus()
}

// addFiles expands the typed paths and globs and selects them.
func (m Model) addFiles() (Model, tea.Cmd) {
	var paths []string
	for _, field := range strings.Fields(m.paths.Value()) {
		matches, err := filepath.Glob(expandHome(field))
		if err != nil || len(matches) == 0 {
			paths = append(paths, field)
			continue
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return m, nil
	}
	m = m.selectPaths(paths)
	if !m.failed {
		m.paths.Reset()
	}
	return m, nil
}

// selectPaths replaces the selection with the accepted files among paths.
// When none are accepted the selection is left alone and an alert shown.
func (m Model) selectPaths(paths []string) Model {
	rejected, err := m.ctrl.Selection().Select(paths)
	if err != nil {
		m.setError(err.Error())
		return m
	}
	m.cursor = 0
	if rejected > 0 {
		m.setInfo(fmt.Sprintf("%d file(s) selected, %d skipped (not PDF or Word)", m.ctrl.Selection().Len(), rejected))
	} else {
		m.setInfo(fmt.Sprintf("%d file(s) selected", m.ctrl.Selection().Len()))
	}
	return m
}

func (m Model) cursorUp() (Model, tea.Cmd) {
	if m.cursor > 0 {
		m.cursor--
	}
	return m, nil
}

func (m Model) cursorDown() (Model, tea.Cmd) {
	if m.cursor < m.ctrl.Selection().Len()-1 {
		m.cursor++
	}
	return m, nil
}

func (m Model) removeFile() (Model, tea.Cmd) {
	m.ctrl.Selection().Remove(m.cursor)
	if m.cursor >= m.ctrl.Selection().Len() && m.cursor > 0 {
		m.cursor--
	}
	return m, nil
}

func (m Model) clearFiles() (Model, tea.Cmd) {
	m.ctrl.Selection().Clear()
	m.cursor = 0
	return m, nil
}

// analyze starts an upload. An empty selection is rejected before any
// request.
func (m Model) analyze() (Model, tea.Cmd) {
	sub, err := m.ctrl.Prepare(strings.TrimSpace(m.job.Value()))
	if err != nil {
		m.setError(upload.SubmitErrorText(err))
		return m, nil
	}
	m.run++
	m.progress = upload.NewProgress(m.opts.ProgressStep, m.opts.ProgressInterval)
	m.screen = screenUploading
	m.status = ""
	logging.For("ui").WithField("files", len(sub.Files)).Debug("upload started")
	return m, tea.Batch(
		rankCmd(m.client, m.run, sub, m.opts.Timeout),
		progressTickCmd(m.run, m.progress.Interval),
	)
}

func (m Model) exportCSV() (Model, tea.Cmd) {
	return m, exportCSVCmd(m.client, m.ctrl.Results(), m.opts.OutputDir, m.opts.Timeout)
}

func (m Model) writeReport() (Model, tea.Cmd) {
	name := fmt.Sprintf("resume_report_%s.html", m.opts.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.OutputDir, name)
	report := export.Report{
		JobDescription: m.ctrl.JobDescription(),
		Response:       m.ctrl.Response(),
	}
	opts := export.DefaultOptions()
	opts.Now = m.opts.Now
	if !m.theme.IsDark {
		opts.Theme = "light"
	}
	return m, reportCmd(m.client, path, report, opts, m.opts.Timeout)
}

func (m Model) showHistory() (Model, tea.Cmd) {
	return m, historyCmd(m.client, m.opts.Timeout)
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) setError(text string) {
	m.status = text
	m.failed = true
}

func (m *Model) setInfo(text string) {
	m.status = text
	m.failed = false
}

// refreshViewport renders the scrolling screens into the viewport.
func (m *Model) refreshViewport() {
	switch m.screen {
	case screenResults:
		m.viewport.SetContent(RenderResults(m.ctrl.Response(), m.theme, m.renderer, m.viewport.Width))
		m.viewport.GotoTop()
	case screenHistory:
		m.viewport.SetContent(RenderHistory(m.history, m.theme))
		m.viewport.GotoTop()
	}
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

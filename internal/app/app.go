// Package app contains the root application model: the three-pane review
// layout, the key and mouse routing, and the glue between the session,
// the annotation engine, and the background analysis commands.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"glint/internal/analyzer"
	"glint/internal/annotate"
	"glint/internal/config"
	"glint/internal/finding"
	"glint/internal/importer"
	"glint/internal/keys"
	"glint/internal/log"
	"glint/internal/pubsub"
	"glint/internal/session"
	"glint/internal/store"
	"glint/internal/syntax"
	"glint/internal/ui/details"
	"glint/internal/ui/findingslist"
	"glint/internal/ui/help"
	"glint/internal/ui/logoverlay"
	"glint/internal/ui/styles"
	"glint/internal/ui/viewer"
	"glint/internal/watcher"
)

// focusArea identifies the pane receiving navigation keys.
type focusArea int

const (
	focusViewer focusArea = iota
	focusList
	focusDetails

	focusCount
)

// Pane zone IDs for mouse focus clicks.
const (
	zonePaneViewer  = "pane:viewer"
	zonePaneList    = "pane:list"
	zonePaneDetails = "pane:details"
)

// Deps bundles the collaborators the command layer wires up for the model.
// Registry and Analyzer are required; everything else degrades gracefully
// when absent (no repo means no history, no segmenter means uncached
// segmentation, no tracer means no spans).
type Deps struct {
	Registry  *syntax.Registry
	Detector  syntax.Detector
	Analyzer  analyzer.Analyzer
	Repo      *store.ReviewRepository
	Segmenter *syntax.CachedSegmenter
	Tracer    trace.Tracer

	// SourcePath is the file to review and watch. Empty starts on the
	// default embedded sample.
	SourcePath string
	DebugMode  bool
	NoWatch    bool
}

// Model is the root application state.
type Model struct {
	cfg  config.Config
	keys keys.KeyMap

	// Analysis pipeline
	session  *session.Session
	engine   *annotate.Engine
	registry *syntax.Registry
	detector syntax.Detector
	segment  annotate.Segmenter
	analyzer analyzer.Analyzer
	repo     *store.ReviewRepository
	tracer   trace.Tracer

	samples   importer.SampleImporter
	files     importer.FileImporter
	sampleIdx int

	// Source identity
	sourcePath   string
	sourceName   string
	language     string
	analyzerName string

	// Panes
	viewer  viewer.Model
	list    findingslist.Model
	details details.Model
	help    help.Model

	focus  focusArea
	width  int
	height int
	ready  bool

	// Layout, recomputed on resize and status toggle
	leftWidth     int
	rightWidth    int
	contentHeight int
	listHeight    int
	detailsHeight int

	analyzing bool
	spinner   spinner.Model
	statusErr string

	showHelp   bool
	showStatus bool

	// Debug log overlay
	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	// File watcher, bridged onto a broker so reloads arrive as events
	watcherHandle  *watcher.Watcher
	watcherCancel  context.CancelFunc
	sourceBroker   *pubsub.Broker[sourceEvent]
	sourceListener *pubsub.ContinuousListener[sourceEvent]
}

// New creates the application model. The watcher starts here when a source
// path is given and watching is enabled; watcher init errors are ignored
// and the app simply loses auto-reload.
func New(cfg config.Config, deps Deps) Model {
	if deps.Detector == nil {
		deps.Detector = syntax.NewHeuristicDetector(deps.Registry)
	}
	if deps.Tracer == nil {
		deps.Tracer = noop.NewTracerProvider().Tracer("glint")
	}

	var segment annotate.Segmenter
	if deps.Segmenter != nil {
		cached := deps.Segmenter
		segment = func(line string, p *syntax.Profile) []syntax.Token {
			return cached.Segment(context.Background(), line, p)
		}
	}

	var (
		watcherHandle  *watcher.Watcher
		watcherCancel  context.CancelFunc
		sourceBroker   *pubsub.Broker[sourceEvent]
		sourceListener *pubsub.ContinuousListener[sourceEvent]
	)
	if deps.SourcePath != "" && cfg.Watcher.Enabled && !deps.NoWatch {
		if w, err := watcher.New(watcher.Config{Path: deps.SourcePath, DebounceDur: cfg.Watcher.Debounce}); err == nil {
			if ch, err := w.Start(); err == nil {
				ctx, cancel := context.WithCancel(context.Background())
				broker := pubsub.NewBroker[sourceEvent]()
				go bridgeWatcher(ctx, ch, broker, deps.SourcePath)

				watcherHandle = w
				watcherCancel = cancel
				sourceBroker = broker
				sourceListener = pubsub.NewContinuousListener(ctx, broker)
			} else {
				_ = w.Stop()
			}
		}
	}

	samples := importer.SampleImporter{}
	sampleIdx := 0
	if deps.SourcePath == "" {
		// Starting on the default sample; the import key should move to
		// the next one, not re-import the same snippet.
		for i, name := range samples.Names() {
			if name == importer.DefaultSample {
				sampleIdx = i + 1
				break
			}
		}
	}

	overlay := logoverlay.New()
	var logListenCmd tea.Cmd
	if deps.DebugMode {
		logListenCmd = overlay.StartListening()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.SpinnerColor)),
	)

	v := viewer.New()
	v.SetShowGutter(cfg.UI.ShowGutter)

	return Model{
		cfg:  cfg,
		keys: keys.DefaultKeyMap(),

		session:  session.New(),
		registry: deps.Registry,
		detector: deps.Detector,
		segment:  segment,
		analyzer: deps.Analyzer,
		repo:     deps.Repo,
		tracer:   deps.Tracer,

		samples:   samples,
		files:     importer.FileImporter{MaxBytes: importer.DefaultMaxBytes},
		sampleIdx: sampleIdx,

		sourcePath:   deps.SourcePath,
		analyzerName: deps.Analyzer.Name(),

		viewer:  v,
		list:    findingslist.New(),
		details: details.New().SetMarkdownStyle(cfg.UI.MarkdownStyle),
		help:    help.New(),

		spinner:    sp,
		showStatus: cfg.UI.ShowStatusBar,

		debugMode:    deps.DebugMode,
		logOverlay:   overlay,
		logListenCmd: logListenCmd,

		watcherHandle:  watcherHandle,
		watcherCancel:  watcherCancel,
		sourceBroker:   sourceBroker,
		sourceListener: sourceListener,
	}
}

// bridgeWatcher republishes raw watcher signals as broker events so the
// update loop consumes them with the same listener pattern as log events.
func bridgeWatcher(ctx context.Context, ch <-chan struct{}, broker *pubsub.Broker[sourceEvent], path string) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			broker.Publish(pubsub.EventUpdated, sourceEvent{path: path})
		}
	}
}

// Init loads the initial document and arms the background listeners.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.sourcePath != "" {
		cmds = append(cmds, loadFileCmd(m.files, m.sourcePath))
	} else {
		cmds = append(cmds, importSampleCmd(m.samples, importer.DefaultSample))
	}
	if m.sourceListener != nil {
		cmds = append(cmds, m.sourceListener.Listen())
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if !m.analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sourceLoadedMsg:
		return m.handleSourceLoaded(msg)

	case analysisResultMsg:
		return m.handleAnalysisResult(msg)

	case pubsub.Event[sourceEvent]:
		log.Info(log.CatWatcher, "Source changed on disk, reloading", "path", msg.Payload.path)
		var cmds []tea.Cmd
		if m.sourcePath != "" {
			cmds = append(cmds, loadFileCmd(m.files, m.sourcePath))
		}
		if m.sourceListener != nil {
			cmds = append(cmds, m.sourceListener.Listen())
		}
		return m, tea.Batch(cmds...)

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case logoverlay.CloseMsg:
		return m, nil
	}

	return m, nil
}

// handleSourceLoaded installs a new document and kicks off its analysis.
func (m Model) handleSourceLoaded(msg sourceLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusErr = msg.err.Error()
		log.ErrorErr(log.CatApp, "Failed to load source", msg.err)
		return m, nil
	}

	m.sourceName = msg.name
	m.language = m.resolveLanguage(msg.document, msg.language)
	m.statusErr = ""
	m.details = m.details.SetSummary("")

	m.session.BeginCycle(msg.document, nil)
	m.applySnapshot()
	m.viewer.GotoTop()

	log.Info(log.CatApp, "Source loaded",
		"name", msg.name, "language", m.language, "bytes", len(msg.document))
	return m.startAnalysis(true)
}

// handleAnalysisResult installs a finished report. Results for text that
// has changed since the request are dropped.
func (m Model) handleAnalysisResult(msg analysisResultMsg) (tea.Model, tea.Cmd) {
	m.analyzing = false

	if msg.err != nil {
		m.statusErr = msg.err.Error()
		log.ErrorErr(log.CatAnalyzer, "Analysis failed", msg.err)
		return m, nil
	}
	if msg.document != m.session.Document() {
		log.Debug(log.CatAnalyzer, "Dropping result for changed document")
		return m, nil
	}

	m.analyzerName = msg.report.Analyzer
	m.details = m.details.SetSummary(msg.report.Summary)
	m.session.BeginCycle(msg.document, msg.report.Findings)
	m.applySnapshot()

	log.Info(log.CatAnalyzer, "Analysis complete",
		"analyzer", msg.report.Analyzer, "findings", len(msg.report.Findings))
	return m, nil
}

// handleKeyMsg routes keys: overlays first, then global actions, then
// focus-dependent navigation.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Debug log overlay toggle works from anywhere in debug mode.
	if m.debugMode && msg.String() == "ctrl+x" {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		m.focus = (m.focus + 1) % focusCount
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.session.Selected() != "" {
			m.session.ClearSelection()
			m.syncSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.Analyze):
		return m.startAnalysis(false)

	case key.Matches(msg, m.keys.Undo):
		if _, ok := m.session.Undo(); ok {
			m.details = m.details.SetSummary("")
			m.applySnapshot()
			m.viewer.GotoTop()
			log.Info(log.CatApp, "Restored previous document")
		}
		return m, nil

	case key.Matches(msg, m.keys.Import):
		return m.importNextSample()

	case key.Matches(msg, m.keys.NextFinding):
		if f, ok := m.list.Next(); ok {
			m.selectFinding(f)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevFinding):
		if f, ok := m.list.Prev(); ok {
			m.selectFinding(f)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFixed):
		if id := m.session.Selected(); id != "" {
			m.session.ToggleFixed(id)
			m.syncSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		// Re-anchor on the selected finding, or select the first one.
		if f, ok := m.list.Current(); ok {
			m.selectFinding(f)
		} else if f, ok := m.list.Next(); ok {
			m.selectFinding(f)
		}
		return m, nil
	}

	return m.handleNavKey(msg)
}

// handleNavKey dispatches movement keys to the focused pane. In the
// findings pane the cursor is the selection, so movement selects.
func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusList:
		switch {
		case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.PageDown):
			if f, ok := m.list.Next(); ok {
				m.selectFinding(f)
			}
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.PageUp):
			if f, ok := m.list.Prev(); ok {
				m.selectFinding(f)
			}
		case key.Matches(msg, m.keys.Top):
			if f, ok := m.list.FindingAt(0); ok {
				m.selectFinding(f)
			}
		case key.Matches(msg, m.keys.Bottom):
			if f, ok := m.list.FindingAt(m.list.Count() - 1); ok {
				m.selectFinding(f)
			}
		}

	case focusDetails:
		switch {
		case key.Matches(msg, m.keys.Down):
			m.details = m.details.ScrollDown(1)
		case key.Matches(msg, m.keys.Up):
			m.details = m.details.ScrollUp(1)
		case key.Matches(msg, m.keys.PageDown):
			m.details = m.details.ScrollDown(max(m.detailsHeight/2, 1))
		case key.Matches(msg, m.keys.PageUp):
			m.details = m.details.ScrollUp(max(m.detailsHeight/2, 1))
		case key.Matches(msg, m.keys.Top):
			m.details = m.details.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.details = m.details.GotoBottom()
		}

	default:
		switch {
		case key.Matches(msg, m.keys.Down):
			m.viewer.ScrollDown(1)
		case key.Matches(msg, m.keys.Up):
			m.viewer.ScrollUp(1)
		case key.Matches(msg, m.keys.PageDown):
			m.viewer.HalfPageDown()
		case key.Matches(msg, m.keys.PageUp):
			m.viewer.HalfPageUp()
		case key.Matches(msg, m.keys.Top):
			m.viewer.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.viewer.GotoBottom()
		}
	}

	return m, nil
}

// handleMouseMsg resolves clicks through bubblezone and routes wheel
// scrolling to the pane under the cursor.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() || m.showHelp {
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		// Findings rows sit inside the list pane zone, so check them first.
		if first, last, ok := m.list.VisibleRows(); ok {
			for i := first; i <= last; i++ {
				if z := zone.Get(findingslist.RowZoneID(i)); z != nil && z.InBounds(msg) {
					if f, ok := m.list.FindingAt(i); ok {
						m.focus = focusList
						m.selectFinding(f)
					}
					return m, nil
				}
			}
		}

		// Source lines: annotated lines select their finding, plain lines
		// clear the selection.
		if first, last, ok := m.viewer.VisibleLines(); ok {
			for line := first; line <= last; line++ {
				if z := zone.Get(viewer.LineZoneID(line)); z != nil && z.InBounds(msg) {
					m.focus = focusViewer
					if id, ok := m.engine.Activate(line); ok {
						if f, found := m.findingByID(id); found {
							m.selectFinding(f)
						}
					} else {
						m.session.ClearSelection()
						m.syncSelection()
					}
					return m, nil
				}
			}
		}

		for _, pane := range []struct {
			id    string
			focus focusArea
		}{
			{zonePaneViewer, focusViewer},
			{zonePaneList, focusList},
			{zonePaneDetails, focusDetails},
		} {
			if z := zone.Get(pane.id); z != nil && z.InBounds(msg) {
				m.focus = pane.focus
				return m, nil
			}
		}
		return m, nil
	}

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		up := msg.Button == tea.MouseButtonWheelUp
		switch {
		case inZone(zonePaneDetails, msg):
			if up {
				m.details = m.details.ScrollUp(3)
			} else {
				m.details = m.details.ScrollDown(3)
			}
		case inZone(zonePaneList, msg):
			if up {
				if f, ok := m.list.Prev(); ok {
					m.selectFinding(f)
				}
			} else {
				if f, ok := m.list.Next(); ok {
					m.selectFinding(f)
				}
			}
		default:
			if up {
				m.viewer.ScrollUp(3)
			} else {
				m.viewer.ScrollDown(3)
			}
		}
	}

	return m, nil
}

// inZone reports whether the mouse event falls inside a marked zone.
func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// startAnalysis begins a cycle for the current document unless one is
// already running. reuse lets the cycle replay a stored report for
// unchanged text instead of re-invoking the analyzer.
func (m Model) startAnalysis(reuse bool) (tea.Model, tea.Cmd) {
	if m.analyzing {
		return m, nil
	}
	document := m.session.Document()
	if document == "" {
		return m, nil
	}

	m.analyzing = true
	m.statusErr = ""
	return m, tea.Batch(
		analyzeCmd(m.analyzer, m.repo, m.tracer, document, m.language, reuse),
		m.spinner.Tick,
	)
}

// importNextSample cycles through the embedded samples. Importing detaches
// the session from the watched file.
func (m Model) importNextSample() (tea.Model, tea.Cmd) {
	names := m.samples.Names()
	if len(names) == 0 {
		return m, nil
	}
	name := names[m.sampleIdx%len(names)]
	m.sampleIdx++

	if m.sourcePath != "" {
		m.sourcePath = ""
		m.stopWatcher()
	}

	log.Info(log.CatApp, "Importing sample", "name", name)
	return m, importSampleCmd(m.samples, name)
}

// applySnapshot rebuilds the engine from the session's current document
// and findings and pushes the new snapshot into every pane.
func (m *Model) applySnapshot() {
	profile, ok := m.registry.Get(m.language)
	if !ok {
		profile = m.registry.Default()
	}

	var opts []annotate.Option
	if m.segment != nil {
		opts = append(opts, annotate.WithSegmenter(m.segment))
	}
	m.engine = annotate.NewEngine(m.session.Document(), profile, m.session.Index(), opts...)

	m.viewer.SetEngine(m.engine)
	m.list.SetFindings(m.session.Findings())
	m.syncSelection()
}

// syncSelection pushes the session's selection and fixed state into the
// panes that render it.
func (m *Model) syncSelection() {
	m.viewer.SetView(m.session.View())
	m.list.SetFixed(m.session.Fixed())
	m.list.SetSelected(m.session.Selected())

	id := m.session.Selected()
	if id == "" {
		m.details = m.details.ClearFinding()
		return
	}
	f, ok := m.findingByID(id)
	if !ok {
		m.details = m.details.ClearFinding()
		return
	}

	var sourceLine string
	if m.engine != nil {
		if line, lok := m.engine.ScrollTarget(f.ID); lok {
			sourceLine = m.engine.Line(line)
		}
	}
	m.details = m.details.SetFinding(f, sourceLine)
}

// selectFinding moves the selection cursor to f and scrolls its line into
// view.
func (m *Model) selectFinding(f finding.Finding) {
	m.session.Select(f.ID)
	m.syncSelection()
	if m.engine != nil {
		if line, ok := m.engine.ScrollTarget(f.ID); ok {
			m.viewer.EnsureVisible(line)
		}
	}
}

// findingByID resolves an ID against the current findings snapshot.
func (m Model) findingByID(id string) (finding.Finding, bool) {
	for _, f := range m.session.Findings() {
		if f.ID == id {
			return f, true
		}
	}
	return finding.Finding{}, false
}

// resolveLanguage picks the syntax profile for a document: forced config
// language, then the importer's file-name hint, then content detection.
func (m Model) resolveLanguage(document, hint string) string {
	if m.cfg.Language != "" {
		if _, ok := m.registry.Get(m.cfg.Language); ok {
			return m.cfg.Language
		}
		log.Warn(log.CatConfig, "Configured language has no profile", "language", m.cfg.Language)
	}
	if hint != "" {
		if _, ok := m.registry.Get(hint); ok {
			return hint
		}
	}
	return m.detector.Detect(document)
}

// layout recomputes pane dimensions from the window size. The source pane
// takes the left three fifths; the right column stacks findings over
// detail.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	m.contentHeight = m.height
	if m.showStatus {
		m.contentHeight--
	}

	m.leftWidth = m.width * 3 / 5
	m.rightWidth = m.width - m.leftWidth
	m.listHeight = m.contentHeight * 2 / 5
	m.detailsHeight = m.contentHeight - m.listHeight

	// Pane borders take two cells each way.
	m.viewer.SetSize(m.leftWidth-2, m.contentHeight-2)
	m.list.SetSize(m.rightWidth-2, m.listHeight-2)
	m.details = m.details.SetSize(m.rightWidth-2, m.detailsHeight-2)

	m.help = m.help.SetSize(m.width, m.height)
	m.logOverlay.SetSize(m.width, m.height)
}

// stopWatcher tears down the watcher, its bridge, and the broker.
func (m *Model) stopWatcher() {
	if m.watcherCancel != nil {
		m.watcherCancel()
		m.watcherCancel = nil
	}
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
		m.watcherHandle = nil
	}
	if m.sourceBroker != nil {
		m.sourceBroker.Close()
		m.sourceBroker = nil
	}
	m.sourceListener = nil
}

// Close releases background resources. Call after the program exits.
func (m *Model) Close() {
	m.stopWatcher()
	m.logOverlay.StopListening()
}

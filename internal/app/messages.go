package app

import "glint/internal/analyzer"

// sourceLoadedMsg carries a freshly imported document into the model. The
// language is the importer's profile hint and may be empty; the model
// resolves the final profile itself.
type sourceLoadedMsg struct {
	document string
	name     string
	language string
	err      error
}

// analysisResultMsg carries a completed analysis cycle. The document the
// analyzer ran against rides along so results for text that has since
// changed can be dropped instead of annotating the wrong lines.
type analysisResultMsg struct {
	report   *analyzer.Report
	document string
	language string
	err      error
}

// sourceEvent is published on the source broker when the watched file
// changes on disk.
type sourceEvent struct {
	path string
}

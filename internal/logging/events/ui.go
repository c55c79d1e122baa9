package events

import "github.com/thecoder93/openclaw/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Cursor(cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) Filter(query string, matches int) {
	logging.Trace("ui.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (UITracer) ConfirmShown(title string) {
	logging.Trace("ui.confirm", map[string]interface{}{"title": title})
}

func (UITracer) ReportError(title string, err error) {
	payload := map[string]interface{}{"title": title}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.report-error", payload)
}

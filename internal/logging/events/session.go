package events

import "github.com/thecoder93/openclaw/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) RefreshStart(force bool, generation uint64) {
	logging.Trace("session.refresh.start", map[string]interface{}{"force": force, "generation": generation})
}

func (SessionTracer) RefreshSkipped(age string) {
	logging.Trace("session.refresh.skipped", map[string]interface{}{"age": age})
}

func (SessionTracer) RefreshDone(rows int, errText string) {
	logging.Trace("session.refresh.done", map[string]interface{}{"rows": rows, "error": errText})
}

func (SessionTracer) SurfaceOpen() {
	logging.Trace("session.surface.open", nil)
}

func (SessionTracer) SurfaceClose() {
	logging.Trace("session.surface.close", nil)
}

func (SessionTracer) PlanEmitted(entries int) {
	logging.Trace("session.plan", map[string]interface{}{"entries": entries})
}

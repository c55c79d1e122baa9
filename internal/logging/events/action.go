package events

import "github.com/thecoder93/openclaw/internal/logging"

type ActionTracer struct{}

var Action = ActionTracer{}

func (ActionTracer) Invoke(op, key string) {
	logging.Trace("action.invoke", map[string]interface{}{"op": op, "key": key})
}

func (ActionTracer) Declined(op, key string) {
	logging.Trace("action.declined", map[string]interface{}{"op": op, "key": key})
}

func (ActionTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"op": op, "error": err.Error()})
}

func (ActionTracer) Success(op, key string) {
	logging.Trace("action.success", map[string]interface{}{"op": op, "key": key})
}

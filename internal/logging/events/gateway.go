package events

import "github.com/thecoder93/openclaw/internal/logging"

type GatewayTracer struct{}

var Gateway = GatewayTracer{}

func (GatewayTracer) Request(method, path, requestID string) {
	logging.Trace("gateway.request", map[string]interface{}{
		"method":    method,
		"path":      path,
		"requestId": requestID,
	})
}

func (GatewayTracer) Failure(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("gateway.failure", map[string]interface{}{"path": path, "error": err.Error()})
}

func (GatewayTracer) ConnectionChange(from, to string) {
	logging.Trace("gateway.connection", map[string]interface{}{"from": from, "to": to})
}

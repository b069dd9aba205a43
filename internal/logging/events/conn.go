package events

import "github.com/alfazet/amusing/internal/logging"

type ConnTracer struct{}

var Conn = ConnTracer{}

func (ConnTracer) Handshake(addr, version string) {
	logging.Trace("conn.handshake", map[string]interface{}{"addr": addr, "version": version})
}

func (ConnTracer) Queued(kind string, depth int) {
	logging.Trace("conn.queued", map[string]interface{}{"kind": kind, "depth": depth})
}

func (ConnTracer) Sent(kind string) {
	logging.Trace("conn.sent", map[string]interface{}{"kind": kind})
}

func (ConnTracer) Reply(kind string, size int) {
	logging.Trace("conn.reply", map[string]interface{}{"kind": kind, "bytes": size})
}

func (ConnTracer) ServerError(kind, reason string) {
	logging.Trace("conn.server-error", map[string]interface{}{"kind": kind, "reason": reason})
}

func (ConnTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("conn.exit", payload)
}

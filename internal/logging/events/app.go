package events

import "github.com/alfazet/amusing/internal/logging"

type AppTracer struct{}

type LoopTracer struct{}

var (
	App  = AppTracer{}
	Loop = LoopTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Screen(name string) {
	logging.Trace("app.screen", map[string]interface{}{"screen": name})
}

func (AppTracer) Status(text string) {
	logging.Trace("app.status", map[string]interface{}{"text": text})
}

func (AppTracer) Quit(reason string) {
	logging.Trace("app.quit", map[string]interface{}{"reason": reason})
}

func (LoopTracer) Disconnected(source string, err error) {
	payload := map[string]interface{}{"source": source}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("loop.disconnected", payload)
}

func (LoopTracer) Dropped(kind string) {
	logging.Trace("loop.dropped", map[string]interface{}{"kind": kind})
}

package events

import "github.com/alfazet/amusing/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Action = ActionTracer{}
)

func (UITracer) Cursor(list string, cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"list": list, "cursor": cursor})
}

func (UITracer) Mark(list string, index int, marked bool) {
	logging.Trace("list.mark", map[string]interface{}{"list": list, "index": index, "marked": marked})
}

func (UITracer) Focus(pane string) {
	logging.Trace("library.focus", map[string]interface{}{"pane": pane})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (ActionTracer) Submit(binding, kind string) {
	logging.Trace("action.submit", map[string]interface{}{"binding": binding, "kind": kind})
}

func (FilterTracer) Cleared(list string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": list})
}

func (FilterTracer) WordBackspace(list, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"list": list, "filter": filter})
}

func (FilterTracer) Cursor(list string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"list": list, "cursor": pos})
}

func (FilterTracer) CursorWord(list string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"list": list, "cursor": pos})
}

func (FilterTracer) Append(list, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"list": list, "filter": filter})
}

func (FilterTracer) Backspace(list, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": list, "filter": filter})
}

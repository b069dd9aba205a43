package events

import (
	"time"

	"github.com/alfazet/amusing/internal/logging"
)

type SearchTracer struct{}

type KeysTracer struct{}

var (
	Search = SearchTracer{}
	Keys   = KeysTracer{}
)

func (SearchTracer) State(list, from, to string) {
	logging.Trace("search.state", map[string]interface{}{"list": list, "from": from, "to": to})
}

func (SearchTracer) Ordered(items int, pattern string, took time.Duration) {
	logging.Trace("search.ordered", map[string]interface{}{
		"items":   items,
		"pattern": pattern,
		"took_us": took.Microseconds(),
	})
}

func (KeysTracer) Pending(keys string) {
	logging.Trace("keys.pending", map[string]interface{}{"keys": keys})
}

func (KeysTracer) Dispatch(keys, binding string) {
	logging.Trace("keys.dispatch", map[string]interface{}{"keys": keys, "binding": binding})
}

func (KeysTracer) NoMatch(keys string) {
	logging.Trace("keys.nomatch", map[string]interface{}{"keys": keys})
}

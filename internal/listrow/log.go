package listrow

import logging "github.com/ipfs/go-log/v2"

var log = logging.Logger("listrow")

// warnOnce logs a recoverable configuration problem the first time key is
// seen for this row.
func (r *Row) warnOnce(key, msg string, kv ...any) {
	if r.warned == nil {
		r.warned = map[string]bool{}
	}
	if r.warned[key] {
		return
	}
	r.warned[key] = true
	log.Warnw(msg, append([]any{"row", r.index, "id", r.id}, kv...)...)
}

package memcache

import "time"

type (
	// lookup carries the outcome of a get back to the caller.
	lookup struct {
		handle *Handle
		err    error
	}

	getCmd struct {
		key     string
		reply   chan lookup // cap 1; the engine sends exactly once
		refresh bool
	}

	putCmd struct {
		key    string
		handle *Handle
		ttl    time.Duration
	}

	removeCmd struct {
		key string
	}
)

// command is the closed set of messages understood by the engine loop.
// Commands are constructed by callers, transferred once through the
// mailbox and consumed exactly once by the loop.
type command interface{ cmdName() string }

func (getCmd) cmdName() string    { return "get" }
func (putCmd) cmdName() string    { return "put" }
func (removeCmd) cmdName() string { return "remove" }

package transport

import (
	"time"

	"github.com/espprov/espprov-go/pkg/log"
)

// capture reports frames and state changes of one transport instance.
type capture struct {
	logger log.Logger
	connID string
	kind   string
	remote string
}

func (c capture) frame(ep Endpoint, dir log.Direction, data []byte) {
	if c.logger == nil {
		return
	}
	e := log.NewFrameEvent(c.connID, string(ep), dir, data)
	e.Transport = c.kind
	e.RemoteAddr = c.remote
	c.logger.Log(e)
}

func (c capture) state(oldState, newState, reason string) {
	if c.logger == nil {
		return
	}
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		Transport:    c.kind,
		RemoteAddr:   c.remote,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

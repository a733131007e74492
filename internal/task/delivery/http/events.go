package http

import (
	"io"

	"github.com/gin-gonic/gin"
)

// Events streams change notifications as server-sent events until the client goes away.
// Each event names a topic; the client re-reads that topic's endpoint.
func (h *handler) Events(c *gin.Context) {
	events, cancel := h.uc.Subscribe()
	defer cancel()

	ctx := c.Request.Context()
	h.l.Debugf(ctx, "delivery.http.Events: subscriber connected")

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"selection": newSelectionResp(h.uc.Selection())})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Topic), ev)
			return true
		}
	})
	h.l.Debugf(ctx, "delivery.http.Events: subscriber gone")
}

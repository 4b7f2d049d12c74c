package dashboard

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

// Poll and heartbeat intervals of the event stream. Tests shorten them.
var (
	pollInterval      = 3 * time.Second
	heartbeatInterval = 15 * time.Second
)

// snapshotEvent holds data for a snapshot SSE event.
type snapshotEvent struct {
	Version string `json:"version"`
	Reports int    `json:"reports"`
}

// handleSSE streams a snapshot event whenever the served version changes.
func handleSSE(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		var lastVersion string
		if snap := s.Snapshot(); snap != nil {
			lastVersion = snap.Version
		}
		writeSSE(c.Writer, "connected", map[string]string{"type": "connected", "version": lastVersion})
		c.Writer.Flush()

		ctx := c.Request.Context()
		ticker := time.NewTicker(pollInterval)
		heartbeat := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				writeSSE(c.Writer, "heartbeat", map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				c.Writer.Flush()
			case <-ticker.C:
				snap := s.Snapshot()
				if snap == nil || snap.Version == lastVersion {
					continue
				}
				lastVersion = snap.Version
				writeSSE(c.Writer, "snapshot", snapshotEvent{Version: snap.Version, Reports: len(snap.Reports)})
				c.Writer.Flush()
			}
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}

package dashboard

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/threadline/internal/reportactions"
	"github.com/zulandar/threadline/internal/store"
)

// registerRoutes sets up all view routes on the Gin router.
func registerRoutes(router *gin.Engine, s *Server) {
	router.GET("/healthz", handleHealth(s))

	reports := router.Group("/api/reports/:id")
	reports.GET("/actions", handleActions(s))
	reports.GET("/chain", handleChain(s))
	reports.GET("/last", handleLast(s))
	reports.GET("/combined", handleCombined(s))
	reports.GET("/visible", handleVisible(s))

	router.GET("/api/events", handleSSE(s))
}

func handleHealth(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := s.Snapshot()
		if snap == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		body := gin.H{
			"status":   "ok",
			"version":  snap.Version,
			"reports":  len(snap.Reports),
			"modified": snap.MostRecentLastModified(),
		}
		if s.cfg != nil {
			body["next_refresh_seconds"] = int(nextRefreshIn(s.cfg.Server.Refresh, time.Now()).Seconds())
		}
		c.JSON(http.StatusOK, body)
	}
}

// withReport resolves the snapshot and report for a request, writing the
// error response itself when either is unavailable.
func withReport(s *Server, c *gin.Context) (*reportactions.Snapshot, string, bool) {
	snap := s.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot not loaded"})
		return nil, "", false
	}
	id := c.Param("id")
	if err := store.CheckReport(snap, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found", "report_id": id})
		return nil, "", false
	}
	return snap, id, true
}

func includeAll(c *gin.Context) bool {
	v := c.Query("all")
	return v == "1" || v == "true"
}

func handleActions(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		order := c.DefaultQuery("order", "desc")
		if order != "asc" && order != "desc" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
			return
		}
		snap, id, ok := withReport(s, c)
		if !ok {
			return
		}
		all := includeAll(c)
		view := s.memo(snap, id, "actions:"+order+":"+c.Query("all"), func() any {
			rows := actionRows(snap, snap.Report(id), snap.SortedForDisplay(id, all))
			if order == "asc" {
				slices.Reverse(rows)
			}
			return gin.H{"report_id": id, "version": snap.Version, "order": order, "actions": rows}
		})
		c.JSON(http.StatusOK, view)
	}
}

func handleChain(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, id, ok := withReport(s, c)
		if !ok {
			return
		}
		anchor := c.Query("anchor")
		view := s.memo(snap, id, "chain:"+anchor, func() any {
			chain := snap.ContinuousChain(id, anchor)
			return gin.H{"report_id": id, "version": snap.Version, "anchor": anchor, "actions": actionRows(snap, snap.Report(id), chain)}
		})
		c.JSON(http.StatusOK, view)
	}
}

func handleLast(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, id, ok := withReport(s, c)
		if !ok {
			return
		}
		view := s.memo(snap, id, "last", func() any {
			body := gin.H{"report_id": id, "version": snap.Version, "action": nil}
			last := snap.LastVisibleAction(id, nil)
			if last != nil {
				body["action"] = actionRow(snap, last)
			}
			body["message"] = snap.LastVisibleMessage(id, nil, last)
			if closed := snap.LastClosedAction(id); closed != nil {
				body["last_closed_action_id"] = closed.ID
			}
			return body
		})
		c.JSON(http.StatusOK, view)
	}
}

func handleCombined(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, id, ok := withReport(s, c)
		if !ok {
			return
		}
		all := includeAll(c)
		view := s.memo(snap, id, "combined:"+c.Query("all"), func() any {
			return gin.H{
				"report_id":        id,
				"version":          snap.Version,
				"thread_report_id": snap.OneTransactionThreadReportID(id),
				"actions":          actionRows(snap, snap.Report(id), snap.CombinedActions(id, all)),
			}
		})
		c.JSON(http.StatusOK, view)
	}
}

func handleVisible(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, id, ok := withReport(s, c)
		if !ok {
			return
		}
		view := s.memo(snap, id, "visible", func() any {
			sorted := snap.SortedForDisplay(id, false)
			return gin.H{
				"report_id":               id,
				"version":                 snap.Version,
				"has_visible_actions":     snap.HasVisibleActions(id, nil),
				"visible_actions":         len(sorted),
				"first_visible_action_id": reportactions.FirstVisibleActionID(sorted, snap.Viewer.Offline),
				"join_request_pending":    snap.IsActionableJoinRequestPending(id),
			}
		})
		c.JSON(http.StatusOK, view)
	}
}

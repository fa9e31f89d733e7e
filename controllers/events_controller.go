package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/utils"
)

// EventsController streams change events to the partner's client over
// SSE. Delivery is best-effort; clients also refetch on focus.
type EventsController struct {
	db *gorm.DB
}

// NewEventsController creates a new controller instance.
func NewEventsController(db *gorm.DB) *EventsController {
	return &EventsController{db: db}
}

// Stream subscribes the caller to partner change events. Own events
// are filtered out; the client already applied them optimistically.
func (e *EventsController) Stream(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	events, err := utils.SubscribeChanges(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50130, "failed to subscribe")
		return
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		if ev.UserID == userID {
			return true
		}
		b, err := json.Marshal(ev)
		if err != nil {
			return true
		}
		ctx.SSEvent("change", string(b))
		return true
	})
}

package chat

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medvault-backend/internal/shared/server/middleware"
	"medvault-backend/internal/shared/server/respond"
	"medvault-backend/internal/shared/telemetry"
)

// FallbackReply is returned whenever the upstream provider fails.
const FallbackReply = "Sorry, I couldn't process your request."

// Handler relays chat messages to the completion provider.
type Handler struct {
	Completer Completer
}

// NewHandler constructs a Handler.
func NewHandler(completer Completer) *Handler {
	return &Handler{Completer: completer}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.ask)
}

type askRequest struct {
	Message string `json:"message"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.JSON(c, http.StatusBadRequest, gin.H{"reply": "No message provided."})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.JSON(c, http.StatusBadRequest, gin.H{"reply": "No message provided."})
		return
	}

	if h.Completer == nil {
		telemetry.Warn("chat.unconfigured", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
		})
		respond.JSON(c, http.StatusOK, gin.H{"reply": FallbackReply})
		return
	}

	reply, err := h.Completer.Complete(c.Request.Context(), req.Message)
	if err != nil {
		// Upstream failures are swallowed; the client only sees the fallback.
		telemetry.Error("chat.upstream_failed", map[string]any{
			"err":        err.Error(),
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    middleware.UserIDFromContext(c),
		})
		respond.JSON(c, http.StatusOK, gin.H{"reply": FallbackReply})
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"reply": reply})
}

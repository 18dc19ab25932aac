package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JITENDRA0811/impetus9-backend/api/models"
	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/gin-gonic/gin"
)

type StatusController struct {
	storage       storage.RegistrationStorage
	allowedEvents map[string]bool
}

func NewStatusController(s storage.RegistrationStorage, openEvents []string) *StatusController {
	allowed := make(map[string]bool, len(openEvents))
	for _, e := range openEvents {
		allowed[e] = true
	}
	return &StatusController{storage: s, allowedEvents: allowed}
}

func (c *StatusController) RegisterRoutes(engine *gin.Engine, rateLimiter gin.HandlerFunc) {
	group := engine.Group("/api/register", rateLimiter)

	group.POST("/status", c.checkStatus)
}

// checkStatus godoc
// @Summary Look up a registration
// @Description Finds one registration by receipt id or roll number within an event
// @Tags registration
// @Accept json
// @Produce json
// @Param lookup body models.StatusLookupRequest true "Search request"
// @Success 200 {object} models.StatusLookupResponse
// @Failure 400 {object} models.ErrorResponse "Invalid event, missing fields or no match"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/register/status [post]
func (c *StatusController) checkStatus(g *gin.Context) {
	var req models.StatusLookupRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	if !c.allowedEvents[req.EventName] {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Invalid Event"})
		return
	}
	if req.SearchField == "" || req.SearchValue == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Missing Required Fields"})
		return
	}

	var reg *storage.Registration
	var err error
	switch req.SearchField {
	case models.SearchFieldReceipt:
		reg, err = c.storage.GetByReceipt(g.Request.Context(), req.EventName, strings.TrimSpace(req.SearchValue))
	case models.SearchFieldRoll:
		reg, err = c.findByRoll(g, req.EventName, strings.ToUpper(strings.TrimSpace(req.SearchValue)))
	default:
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Invalid Search Field"})
		return
	}

	if err != nil {
		if errors.Is(err, storage.ErrRegistrationNotFound) {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "No registration found with these details."})
			return
		}
		logging.Log.Errorf("STATUS: lookup failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Server Error"})
		return
	}

	g.JSON(http.StatusOK, &models.StatusLookupResponse{
		Success: true,
		Data:    models.TransformRegistrationFromStorage(reg),
	})
}

// findByRoll matches the roll against captains and members alike, so a
// team member can check their own team's status.
func (c *StatusController) findByRoll(g *gin.Context, eventName, roll string) (*storage.Registration, error) {
	regs, err := c.storage.GetByEvent(g.Request.Context(), eventName)
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		if reg.CapRoll == roll {
			return reg, nil
		}
		for _, m := range reg.TeamMembers {
			if m.MemRoll == roll {
				return reg, nil
			}
		}
	}
	return nil, storage.ErrRegistrationNotFound
}

package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/api/models"
	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/JITENDRA0811/impetus9-backend/spreadsheet"
	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/JITENDRA0811/impetus9-backend/vcard"
	"github.com/gin-gonic/gin"
)

const downloadTimeLayout = "02 Jan 2006, 15:04:05"

type ExportController struct {
	registrations storage.RegistrationStorage
	locks         storage.ExportLockStorage
	passkeys      map[string]string
}

// NewExportController takes the per-event coordinator passkeys resolved
// at startup; nothing here reads the environment.
func NewExportController(regs storage.RegistrationStorage, locks storage.ExportLockStorage, passkeys map[string]string) *ExportController {
	return &ExportController{
		registrations: regs,
		locks:         locks,
		passkeys:      passkeys,
	}
}

func (c *ExportController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/coordinator")

	group.POST("/download", c.download)
}

// download godoc
// @Summary Export an event's registrant list
// @Description Returns the participant spreadsheet; the first coordinator to claim the event also receives the contact cards
// @Tags coordinator
// @Accept json
// @Produce json
// @Param request body models.ExportRequest true "Export request"
// @Success 200 {object} models.ExportResponse
// @Failure 400 {object} models.ErrorResponse "Missing fields"
// @Failure 401 {object} models.ErrorResponse "Invalid passkey"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/coordinator/download [post]
func (c *ExportController) download(g *gin.Context) {
	var req models.ExportRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.EventName == "" || req.CoordinatorName == "" || req.Passkey == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Missing Required Fields"})
		return
	}

	expected, ok := c.passkeys[req.EventName]
	if !ok || expected != req.Passkey {
		logging.Log.Warnf("EXPORT: invalid passkey attempt for %s by %s", req.EventName, req.CoordinatorName)
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "Invalid Passkey"})
		return
	}

	regs, err := c.registrations.GetByEvent(g.Request.Context(), req.EventName)
	if err != nil {
		logging.Log.Errorf("EXPORT: failed to read registrations for %s: %v", req.EventName, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Server Error processing download"})
		return
	}
	if len(regs) == 0 {
		// Informational, not an error, and the lock stays untouched.
		g.JSON(http.StatusOK, &models.ExportResponse{
			Success: false,
			Message: "No one registered yet!",
		})
		return
	}

	lock, isFirst, err := c.claimLock(g, req.EventName, req.CoordinatorName)
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Server Error processing download"})
		return
	}

	excelBase64, err := spreadsheet.BuildParticipantsSheet(regs)
	if err != nil {
		logging.Log.Errorf("EXPORT: failed to build spreadsheet for %s: %v", req.EventName, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Server Error processing download"})
		return
	}

	resp := &models.ExportResponse{
		Success:     true,
		ExcelBase64: excelBase64,
	}
	if isFirst {
		cards := vcard.ForRegistrations(req.EventName, regs)
		resp.VCF = &cards
		resp.Message = "You are the first coordinator, You can download both Contacts and the Excel Sheet"
		logging.Log.Infof("EXPORT: %s claimed first download for %s (%d registrations)", req.CoordinatorName, req.EventName, len(regs))
	} else {
		resp.Message = fmt.Sprintf("Alert: Contacts were ALREADY downloaded by %s, at %s.",
			lock.FirstDownloaderName, lock.DownloadTime.Format(downloadTimeLayout))
	}
	g.JSON(http.StatusOK, resp)
}

// claimLock ensures the per-event lock record exists and then races the
// conditional flip. Losing the flip is the expected path for every
// caller but one; the loser re-reads to learn who won.
func (c *ExportController) claimLock(g *gin.Context, eventName, coordinatorName string) (*storage.ExportLock, bool, error) {
	ctx := g.Request.Context()

	if err := c.locks.EnsureCreated(ctx, eventName); err != nil {
		logging.Log.Errorf("EXPORT: failed to ensure lock for %s: %v", eventName, err)
		return nil, false, err
	}

	lock, claimed, err := c.locks.Claim(ctx, eventName, coordinatorName, time.Now().UTC())
	if err != nil {
		logging.Log.Errorf("EXPORT: lock claim failed for %s: %v", eventName, err)
		return nil, false, err
	}
	if claimed {
		return lock, true, nil
	}

	lock, err = c.locks.Get(ctx, eventName)
	if err != nil {
		logging.Log.Errorf("EXPORT: failed to re-read lock for %s: %v", eventName, err)
		return nil, false, err
	}
	return lock, false, nil
}

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/api/models"
	"github.com/JITENDRA0811/impetus9-backend/captcha"
	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/JITENDRA0811/impetus9-backend/uploads"
	"github.com/gin-gonic/gin"
)

const phoneConflictMessage = "Duplicate Registration: This Captain/Phone is already registered for this event."
const rollConflictMessage = "This Roll Number is already registered for this event."

type RegistrationController struct {
	storage       storage.RegistrationStorage
	verifier      captcha.Verifier
	uploads       uploads.Store
	allowedEvents map[string]bool
}

func NewRegistrationController(s storage.RegistrationStorage, v captcha.Verifier, u uploads.Store, openEvents []string) *RegistrationController {
	allowed := make(map[string]bool, len(openEvents))
	for _, e := range openEvents {
		allowed[e] = true
	}
	return &RegistrationController{
		storage:       s,
		verifier:      v,
		uploads:       u,
		allowedEvents: allowed,
	}
}

func (c *RegistrationController) RegisterRoutes(engine *gin.Engine, rateLimiter gin.HandlerFunc) {
	group := engine.Group("/api/register", rateLimiter)

	group.POST("", c.register)
}

// register godoc
// @Summary Submit a team registration
// @Description Admits an internal (JSON) or external (multipart with payment screenshot) team registration and issues a receipt id
// @Tags registration
// @Accept json
// @Accept mpfd
// @Produce json
// @Param registration body models.RegistrationRequest true "Registration draft"
// @Success 201 {object} models.RegistrationResponse
// @Failure 400 {object} models.ErrorResponse "Validation failure, invalid event or captcha failure"
// @Failure 409 {object} models.ErrorResponse "Phone or roll already registered for this event"
// @Failure 429 {object} models.ErrorResponse "Device registration cap reached"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/register [post]
func (c *RegistrationController) register(g *gin.Context) {
	req, file, err := prepareRegistrationPayload(g)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Invalid Data Format: Could not parse request"})
		return
	}
	req.Normalize()

	if !c.allowedEvents[req.EventName] {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Invalid Event"})
		return
	}
	if !req.HasRequiredFields() {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Missing required fields"})
		return
	}

	if !c.verifier.Verify(g.Request.Context(), req.CaptchaToken) {
		logging.Log.Warnf("REGISTER: captcha verification failed for event %s", req.EventName)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "captcha verification failed"})
		return
	}

	deviceCount, err := c.storage.CountByDevice(g.Request.Context(), req.DeviceFingerprint)
	if err != nil {
		logging.Log.Errorf("REGISTER: device count failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Registration Failed"})
		return
	}
	if deviceCount >= models.MaxRegistrationsPerDevice {
		g.JSON(http.StatusTooManyRequests, &models.ErrorResponse{
			Error: "Device Limit Reached: You have registered too many times from this device",
		})
		return
	}

	if file != nil {
		path, err := c.uploads.Save(file)
		if err != nil {
			if errors.Is(err, uploads.ErrNotAnImage) || errors.Is(err, uploads.ErrFileTooLarge) {
				g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
				return
			}
			logging.Log.Errorf("REGISTER: failed to store screenshot: %v", err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Registration Failed"})
			return
		}
		req.PaymentScreenshot = path
	}

	if err := req.Validate(); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: ve.Message})
			return
		}
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	// Best-effort pre-filter for friendly errors; the transactional
	// guards at insert time remain the authority for the invariant.
	if conflict, err := c.findConflicts(g.Request.Context(), req); err != nil {
		logging.Log.Errorf("REGISTER: conflict pre-check failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Registration Failed"})
		return
	} else if conflict != nil {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: conflictMessage(conflict.Kind)})
		return
	}

	receiptID, err := c.newReceiptID(g.Request.Context(), req.EventName)
	if err != nil {
		logging.Log.Errorf("REGISTER: receipt generation failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Registration Failed"})
		return
	}

	reg := req.ToStorage(receiptID, time.Now().UTC())
	if err := c.storage.Create(g.Request.Context(), reg); err != nil {
		if conflict, ok := storage.AsConflict(err); ok {
			// The pre-check raced a concurrent insert; same answer either way.
			logging.Log.Warnf("REGISTER: insert lost uniqueness race (%s) for event %s", conflict.Kind, req.EventName)
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: conflictMessage(conflict.Kind)})
			return
		}
		logging.Log.Errorf("REGISTER: failed to persist registration: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Registration Failed"})
		return
	}

	logging.Log.Infof("REGISTER: admitted %s team %s into %s (%s)", reg.ParticipantType, reg.TeamName, reg.EventName, reg.ReceiptID)

	if reg.ParticipantType == storage.ParticipantExternal {
		// Receipt stays withheld until payment verification completes.
		g.JSON(http.StatusCreated, &models.RegistrationResponse{
			Success:   true,
			Message:   "Registration Submitted for Verification",
			ReceiptID: "PENDING",
			Status:    string(storage.StatusPending),
		})
		return
	}
	g.JSON(http.StatusCreated, &models.RegistrationResponse{
		Success:   true,
		Message:   "Registration Successful",
		ReceiptID: reg.ReceiptID,
		Status:    string(storage.StatusVerified),
	})
}

// prepareRegistrationPayload decodes either the internal JSON body or
// the external multipart form, where teamMembers arrives as a JSON
// string field and the participant type is implied by the attachment.
func prepareRegistrationPayload(g *gin.Context) (*models.RegistrationRequest, *multipart.FileHeader, error) {
	if !strings.HasPrefix(g.ContentType(), "multipart/form-data") {
		var req models.RegistrationRequest
		if err := g.ShouldBindJSON(&req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	var members []models.TeamMemberRequest
	if raw := g.PostForm("teamMembers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &members); err != nil {
			return nil, nil, err
		}
	}

	req := &models.RegistrationRequest{
		EventName:         g.PostForm("eventName"),
		TeamName:          g.PostForm("teamName"),
		CapName:           g.PostForm("capName"),
		CapPhone:          g.PostForm("capPhone"),
		TeamMembers:       members,
		ParticipantType:   string(storage.ParticipantExternal),
		DeviceFingerprint: g.PostForm("deviceFingerprint"),
		CaptchaToken:      g.PostForm("captchaToken"),
	}

	file, err := g.FormFile("paymentScreenshot")
	if err != nil {
		// Missing attachment surfaces later as a validation error.
		return req, nil, nil
	}
	return req, file, nil
}

// findConflicts scans existing registrations for the event and reports
// the first phone or roll intersection with the draft.
func (c *RegistrationController) findConflicts(ctx context.Context, req *models.RegistrationRequest) (*storage.ConflictError, error) {
	existing, err := c.storage.GetByEvent(ctx, req.EventName)
	if err != nil {
		return nil, err
	}

	phones := map[string]bool{}
	for _, p := range req.Phones() {
		phones[p] = true
	}
	rolls := map[string]bool{}
	for _, r := range req.Rolls() {
		rolls[r] = true
	}

	for _, reg := range existing {
		for _, p := range reg.Phones() {
			if phones[p] {
				return &storage.ConflictError{Kind: storage.ConflictPhone, Value: p}, nil
			}
		}
		for _, r := range reg.Rolls() {
			if rolls[r] {
				return &storage.ConflictError{Kind: storage.ConflictRoll, Value: r}, nil
			}
		}
	}
	return nil, nil
}

func conflictMessage(kind storage.ConflictKind) string {
	if kind == storage.ConflictRoll {
		return rollConflictMessage
	}
	return phoneConflictMessage
}

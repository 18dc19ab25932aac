package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/storage"
)

type TeamMemberRequest struct {
	MemName  string `json:"memName"`
	MemPhone string `json:"memPhone"`
	MemRoll  string `json:"memRoll,omitempty"`
}

type RegistrationRequest struct {
	EventName         string              `json:"eventName"`
	TeamName          string              `json:"teamName"`
	CapName           string              `json:"capName"`
	CapPhone          string              `json:"capPhone"`
	CapRoll           string              `json:"capRoll,omitempty"`
	TeamMembers       []TeamMemberRequest `json:"teamMembers"`
	ParticipantType   string              `json:"participantType"`
	DeviceFingerprint string              `json:"deviceFingerprint"`
	CaptchaToken      string              `json:"captchaToken,omitempty"`

	// Set server-side from the uploaded file, never bound from the body.
	PaymentScreenshot string `json:"-"`
}

// ValidationError is a rejected draft; the message is safe to return to
// the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Normalize trims free-text fields and uppercases roll numbers. Empty
// rolls are dropped entirely so they never collide under the roll
// uniqueness claims, and external teams carry no rolls at all.
func (r *RegistrationRequest) Normalize() {
	r.EventName = strings.TrimSpace(r.EventName)
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.CapName = strings.TrimSpace(r.CapName)
	r.CapPhone = strings.TrimSpace(r.CapPhone)
	r.CapRoll = strings.ToUpper(strings.TrimSpace(r.CapRoll))
	r.DeviceFingerprint = strings.TrimSpace(r.DeviceFingerprint)

	for i := range r.TeamMembers {
		m := &r.TeamMembers[i]
		m.MemName = strings.TrimSpace(m.MemName)
		m.MemPhone = strings.TrimSpace(m.MemPhone)
		m.MemRoll = strings.ToUpper(strings.TrimSpace(m.MemRoll))
	}

	if r.ParticipantType == string(storage.ParticipantExternal) {
		r.CapRoll = ""
		for i := range r.TeamMembers {
			r.TeamMembers[i].MemRoll = ""
		}
	}
}

// HasRequiredFields reports whether the mandatory fields are present.
// Pattern checks live in Validate; this mirrors the cheap up-front
// check done before the captcha round-trip.
func (r *RegistrationRequest) HasRequiredFields() bool {
	return r.TeamName != "" && r.CapName != "" && r.CapPhone != "" && r.DeviceFingerprint != ""
}

// Validate checks field formats and the draft's self-consistency: a
// phone or roll repeated inside one submission is rejected before any
// storage round-trip.
func (r *RegistrationRequest) Validate() error {
	internal := r.ParticipantType == string(storage.ParticipantInternal)
	external := r.ParticipantType == string(storage.ParticipantExternal)
	if !internal && !external {
		return validationErrorf("Invalid participant type")
	}

	if !MobileRegex.MatchString(r.CapPhone) {
		return validationErrorf("Invalid Mobile Number. Hint - Indian mobile numbers only")
	}
	if internal {
		if r.CapRoll == "" {
			return validationErrorf("Captain roll number is required for internal teams")
		}
		if !RollRegex.MatchString(r.CapRoll) {
			return validationErrorf("Invalid Roll Number. Hint - Only Uppercases (eg., 2023MEB025)")
		}
	}
	if external && r.PaymentScreenshot == "" {
		return validationErrorf("Payment screenshot is required for external teams")
	}

	phoneSet := map[string]bool{r.CapPhone: true}
	rollSet := map[string]bool{}
	if internal {
		rollSet[r.CapRoll] = true
	}

	for _, m := range r.TeamMembers {
		if m.MemName == "" {
			return validationErrorf("Team member name is required")
		}
		if !MobileRegex.MatchString(m.MemPhone) {
			return validationErrorf("Invalid Mobile Number for member %s. Hint - Indian mobile numbers only", m.MemName)
		}
		if phoneSet[m.MemPhone] {
			return validationErrorf("Duplicate phone number found for member %s", m.MemName)
		}
		phoneSet[m.MemPhone] = true

		if internal {
			if m.MemRoll == "" {
				return validationErrorf("Roll number is required for member %s", m.MemName)
			}
			if !RollRegex.MatchString(m.MemRoll) {
				return validationErrorf("Invalid Roll Number for member %s. Hint - Only Uppercases (eg., 2023MEB025)", m.MemName)
			}
			if rollSet[m.MemRoll] {
				return validationErrorf("Duplicate roll number found for member %s", m.MemName)
			}
			rollSet[m.MemRoll] = true
		}
	}
	return nil
}

// Phones returns the captain phone followed by every member phone.
func (r *RegistrationRequest) Phones() []string {
	phones := make([]string, 0, len(r.TeamMembers)+1)
	phones = append(phones, r.CapPhone)
	for _, m := range r.TeamMembers {
		phones = append(phones, m.MemPhone)
	}
	return phones
}

// Rolls returns every roll number in the draft; empty for external teams.
func (r *RegistrationRequest) Rolls() []string {
	var rolls []string
	if r.CapRoll != "" {
		rolls = append(rolls, r.CapRoll)
	}
	for _, m := range r.TeamMembers {
		if m.MemRoll != "" {
			rolls = append(rolls, m.MemRoll)
		}
	}
	return rolls
}

// ToStorage builds the registration document. Internal teams are
// verified immediately; external ones stay pending until the payment
// screenshot is checked out of band.
func (r *RegistrationRequest) ToStorage(receiptID string, createdAt time.Time) *storage.Registration {
	status := storage.StatusVerified
	if r.ParticipantType == string(storage.ParticipantExternal) {
		status = storage.StatusPending
	}

	members := make([]storage.TeamMember, 0, len(r.TeamMembers))
	for _, m := range r.TeamMembers {
		members = append(members, storage.TeamMember{
			MemName:  m.MemName,
			MemPhone: m.MemPhone,
			MemRoll:  m.MemRoll,
		})
	}

	return &storage.Registration{
		EventName:         r.EventName,
		ReceiptID:         receiptID,
		TeamName:          r.TeamName,
		CapName:           r.CapName,
		CapPhone:          r.CapPhone,
		CapRoll:           r.CapRoll,
		TeamMembers:       members,
		ParticipantType:   storage.ParticipantType(r.ParticipantType),
		DeviceFingerprint: r.DeviceFingerprint,
		PaymentScreenshot: r.PaymentScreenshot,
		Status:            status,
		CreatedAt:         createdAt,
	}
}

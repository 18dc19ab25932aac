package models

import (
	"testing"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInternal() RegistrationRequest {
	return RegistrationRequest{
		EventName:         "Chess",
		TeamName:          "Knight Riders",
		CapName:           "Asha",
		CapPhone:          "9876543210",
		CapRoll:           "2023MEB025",
		ParticipantType:   "INTERNAL",
		DeviceFingerprint: "dev-1",
		TeamMembers: []TeamMemberRequest{
			{MemName: "Ravi", MemPhone: "9876543211", MemRoll: "2023MEB026"},
		},
	}
}

func TestNormalize(t *testing.T) {
	t.Run("trims and uppercases rolls", func(t *testing.T) {
		req := validInternal()
		req.CapRoll = " 2023meb025 "
		req.TeamMembers[0].MemRoll = "2023meb026"
		req.TeamName = "  Knight Riders "
		req.Normalize()

		assert.Equal(t, "2023MEB025", req.CapRoll)
		assert.Equal(t, "2023MEB026", req.TeamMembers[0].MemRoll)
		assert.Equal(t, "Knight Riders", req.TeamName)
	})

	t.Run("drops rolls from external drafts", func(t *testing.T) {
		req := validInternal()
		req.ParticipantType = "EXTERNAL"
		req.PaymentScreenshot = "uploads/receipt-x.png"
		req.Normalize()

		assert.Empty(t, req.CapRoll)
		assert.Empty(t, req.TeamMembers[0].MemRoll)
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid internal draft passes", func(t *testing.T) {
		req := validInternal()
		req.Normalize()
		assert.NoError(t, req.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*RegistrationRequest)
	}{
		{"bad captain phone", func(r *RegistrationRequest) { r.CapPhone = "1234567890" }},
		{"short captain phone", func(r *RegistrationRequest) { r.CapPhone = "98765" }},
		{"bad captain roll", func(r *RegistrationRequest) { r.CapRoll = "MEB2023025" }},
		{"missing captain roll", func(r *RegistrationRequest) { r.CapRoll = "" }},
		{"bad member phone", func(r *RegistrationRequest) { r.TeamMembers[0].MemPhone = "5876543211" }},
		{"missing member roll", func(r *RegistrationRequest) { r.TeamMembers[0].MemRoll = "" }},
		{"missing member name", func(r *RegistrationRequest) { r.TeamMembers[0].MemName = "" }},
		{"unknown participant type", func(r *RegistrationRequest) { r.ParticipantType = "ALUMNI" }},
		{"captain phone repeated in members", func(r *RegistrationRequest) { r.TeamMembers[0].MemPhone = "9876543210" }},
		{"captain roll repeated in members", func(r *RegistrationRequest) { r.TeamMembers[0].MemRoll = "2023MEB025" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validInternal()
			tc.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	t.Run("duplicate phone between two members", func(t *testing.T) {
		req := validInternal()
		req.TeamMembers = append(req.TeamMembers, TeamMemberRequest{
			MemName: "Sita", MemPhone: "9876543211", MemRoll: "2023MEB027",
		})
		assert.Error(t, req.Validate())
	})

	t.Run("external draft needs a screenshot", func(t *testing.T) {
		req := validInternal()
		req.ParticipantType = "EXTERNAL"
		req.Normalize()
		assert.Error(t, req.Validate())

		req.PaymentScreenshot = "uploads/receipt-x.png"
		assert.NoError(t, req.Validate())
	})
}

func TestToStorage(t *testing.T) {
	now := time.Now().UTC()

	t.Run("internal registrations are verified immediately", func(t *testing.T) {
		req := validInternal()
		reg := req.ToStorage("CHE-1A2B3C", now)

		assert.Equal(t, storage.StatusVerified, reg.Status)
		assert.Equal(t, "CHE-1A2B3C", reg.ReceiptID)
		assert.Equal(t, now, reg.CreatedAt)
		require.Len(t, reg.TeamMembers, 1)
		assert.Equal(t, "Ravi", reg.TeamMembers[0].MemName)
	})

	t.Run("external registrations stay pending", func(t *testing.T) {
		req := validInternal()
		req.ParticipantType = "EXTERNAL"
		reg := req.ToStorage("CHE-1A2B3D", now)

		assert.Equal(t, storage.StatusPending, reg.Status)
	})
}

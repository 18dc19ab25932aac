package vcard

import (
	"strings"
	"testing"

	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	card := Render("ch2023MEB025-1", "9876543210")

	want := "BEGIN:VCARD\nVERSION:3.0\nFN:ch2023MEB025-1\nN:;ch2023MEB025-1;;;\nTEL;TYPE=CELL:9876543210\nEND:VCARD\n"
	assert.Equal(t, want, card)
}

func TestContactID(t *testing.T) {
	t.Run("internal uses the captain roll", func(t *testing.T) {
		reg := &storage.Registration{
			ParticipantType: storage.ParticipantInternal,
			CapRoll:         "2023MEB025",
			CapPhone:        "9876543210",
		}
		assert.Equal(t, "ch2023MEB025", ContactID("Chess", reg))
	})

	t.Run("external uses the phone suffix", func(t *testing.T) {
		reg := &storage.Registration{
			ParticipantType: storage.ParticipantExternal,
			CapPhone:        "9876543210",
		}
		assert.Equal(t, "chEXT76543210", ContactID("Chess", reg))
	})
}

func TestForRegistrations(t *testing.T) {
	regs := []*storage.Registration{
		{
			ParticipantType: storage.ParticipantInternal,
			CapName:         "Asha",
			CapPhone:        "9876543210",
			CapRoll:         "2023MEB025",
			TeamMembers: []storage.TeamMember{
				{MemName: "Ravi", MemPhone: "9876543211", MemRoll: "2023MEB026"},
				{MemName: "Sita", MemPhone: "9876543212", MemRoll: "2023MEB027"},
			},
		},
		{
			ParticipantType: storage.ParticipantExternal,
			CapName:         "Zoya",
			CapPhone:        "9123456780",
		},
	}

	out := ForRegistrations("Chess", regs)

	assert.Equal(t, 3, strings.Count(out, "BEGIN:VCARD"), "Captain + first member + external captain")
	assert.Contains(t, out, "FN:ch2023MEB025-1")
	assert.Contains(t, out, "FN:ch2023MEB025-2")
	assert.NotContains(t, out, "9876543212", "Only the first team member gets a card")
	assert.Contains(t, out, "FN:chEXT23456780-1")
}

// Package vcard emits VCARD 3.0 text blocks for coordinator phone
// canvassing. The exact field layout is what the fest frontends import,
// so it is built verbatim rather than through an encoder.
package vcard

import (
	"fmt"
	"strings"

	"github.com/JITENDRA0811/impetus9-backend/storage"
)

var nonDigits = strings.NewReplacer(" ", "", "-", "", "+", "")

// Render produces a single contact card. The contact id doubles as the
// display name so imported contacts sort by event.
func Render(id, phone string) string {
	return fmt.Sprintf("BEGIN:VCARD\nVERSION:3.0\nFN:%s\nN:;%s;;;\nTEL;TYPE=CELL:%s\nEND:VCARD\n", id, id, phone)
}

// ContactID derives the per-registration identifier: the first two
// letters of the event name lowercased, plus the captain roll for
// internal teams or EXT + the last 8 phone digits for external ones.
func ContactID(eventName string, reg *storage.Registration) string {
	prefix := strings.ToLower(eventName)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	if reg.ParticipantType == storage.ParticipantInternal {
		return prefix + reg.CapRoll
	}
	digits := nonDigits.Replace(reg.CapPhone)
	if len(digits) > 8 {
		digits = digits[len(digits)-8:]
	}
	return prefix + "EXT" + digits
}

// ForRegistrations renders cards for every registration: one for the
// captain and, when the first team member has a phone, one more for
// that member. Only the first member gets a card.
func ForRegistrations(eventName string, regs []*storage.Registration) string {
	var b strings.Builder
	for _, reg := range regs {
		id := ContactID(eventName, reg)
		b.WriteString(Render(id+"-1", reg.CapPhone))
		if len(reg.TeamMembers) > 0 && reg.TeamMembers[0].MemPhone != "" {
			b.WriteString(Render(id+"-2", reg.TeamMembers[0].MemPhone))
		}
	}
	return b.String()
}

package storage

import "time"

type ParticipantType string

const (
	ParticipantInternal ParticipantType = "INTERNAL"
	ParticipantExternal ParticipantType = "EXTERNAL"
)

type RegistrationStatus string

const (
	StatusVerified RegistrationStatus = "VERIFIED"
	StatusPending  RegistrationStatus = "PENDING"
	StatusRejected RegistrationStatus = "REJECTED"
)

type TeamMember struct {
	MemName  string `dynamodbav:"MemName" json:"memName"`
	MemPhone string `dynamodbav:"MemPhone" json:"memPhone"`
	MemRoll  string `dynamodbav:"MemRoll,omitempty" json:"memRoll,omitempty"`
}

type Registration struct {
	EventName         string             `dynamodbav:"EventName"`
	ReceiptID         string             `dynamodbav:"ReceiptId"`
	TeamName          string             `dynamodbav:"TeamName"`
	CapName           string             `dynamodbav:"CapName"`
	CapPhone          string             `dynamodbav:"CapPhone"`
	CapRoll           string             `dynamodbav:"CapRoll,omitempty"`
	TeamMembers       []TeamMember       `dynamodbav:"TeamMembers"`
	ParticipantType   ParticipantType    `dynamodbav:"ParticipantType"`
	DeviceFingerprint string             `dynamodbav:"DeviceFingerprint"`
	PaymentScreenshot string             `dynamodbav:"PaymentScreenshot,omitempty"`
	Status            RegistrationStatus `dynamodbav:"Status"`
	CreatedAt         time.Time          `dynamodbav:"CreatedAt"`
}

// Phones returns the captain phone followed by every member phone.
func (r *Registration) Phones() []string {
	phones := make([]string, 0, len(r.TeamMembers)+1)
	phones = append(phones, r.CapPhone)
	for _, m := range r.TeamMembers {
		phones = append(phones, m.MemPhone)
	}
	return phones
}

// Rolls returns every roll number on the registration. Empty for
// external teams, which carry no rolls.
func (r *Registration) Rolls() []string {
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

type ExportLock struct {
	EventName           string    `dynamodbav:"EventName"`
	Exported            bool      `dynamodbav:"Exported"`
	FirstDownloaderName string    `dynamodbav:"FirstDownloaderName,omitempty"`
	DownloadTime        time.Time `dynamodbav:"DownloadTime,omitempty"`
}

package models

import "regexp"

// Indian mobile numbers and institute roll codes, e.g. 9876543210 and
// 2023MEB025.
var (
	MobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
	RollRegex   = regexp.MustCompile(`^[0-9]{4}[A-Z]{3}[0-9]{3}$`)
)

const (
	SearchFieldReceipt = "receiptID"
	SearchFieldRoll    = "RollNo"
)

// MaxRegistrationsPerDevice caps how many registrations a single device
// fingerprint may submit across all events.
const MaxRegistrationsPerDevice = 5

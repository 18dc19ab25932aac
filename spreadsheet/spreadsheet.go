// Package spreadsheet renders the coordinator-facing participant sheet.
package spreadsheet

import (
	"encoding/base64"
	"fmt"

	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Participants"

const registeredAtLayout = "02 Jan 2006, 15:04:05"

// BuildParticipantsSheet renders one row per registration with member
// columns widened to the largest team, and returns the workbook as a
// base64 string ready for the JSON response.
func BuildParticipantsSheet(regs []*storage.Registration) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", err
	}

	maxMembers := 0
	for _, reg := range regs {
		if len(reg.TeamMembers) > maxMembers {
			maxMembers = len(reg.TeamMembers)
		}
	}

	headers := []interface{}{
		"Team Name", "Captain Name", "Captain Phone", "Captain Roll", "Type", "Registered At",
	}
	for i := 1; i <= maxMembers; i++ {
		headers = append(headers,
			fmt.Sprintf("Mem %d Name", i),
			fmt.Sprintf("Mem %d Roll", i),
			fmt.Sprintf("Mem %d Phone", i),
		)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return "", err
	}

	for i, reg := range regs {
		capRoll := reg.CapRoll
		if reg.ParticipantType != storage.ParticipantInternal {
			capRoll = "EXTERNAL"
		}
		row := []interface{}{
			reg.TeamName,
			reg.CapName,
			reg.CapPhone,
			capRoll,
			string(reg.ParticipantType),
			reg.CreatedAt.Format(registeredAtLayout),
		}
		for j := 0; j < maxMembers; j++ {
			if j < len(reg.TeamMembers) {
				m := reg.TeamMembers[j]
				row = append(row, orDash(m.MemName), orDash(m.MemRoll), orDash(m.MemPhone))
			} else {
				row = append(row, "", "", "")
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", err
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeaderCell, boldStyle); err != nil {
		return "", err
	}
	if err := f.SetColWidth(sheetName, "A", "B", 25); err != nil {
		return "", err
	}
	if err := f.SetColWidth(sheetName, "C", "F", 18); err != nil {
		return "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

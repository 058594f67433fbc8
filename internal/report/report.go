// Package report builds the schedule export workbook.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"floorten/internal/models"
)

var header = []string{"Date", "Start", "End", "Event", "Type", "Contact", "Owner"}

// ScheduleWorkbook renders one sheet per room with that room's
// bookings sorted by start time. The caller owns the returned file.
func ScheduleWorkbook(rooms []models.Room) (*excelize.File, error) {
	f := excelize.NewFile()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, room := range rooms {
		sheet := room.Name
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}

		for col, title := range header {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, title); err != nil {
				return nil, err
			}
		}
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, startCell, endCell, boldStyle); err != nil {
			return nil, err
		}

		for row, b := range room.SortedBookings() {
			values := []interface{}{
				b.StartTime.Format("2006-01-02"),
				b.StartTime.Format("15:04"),
				b.EndTime.Format("15:04"),
				b.EventName,
				string(b.MeetingType),
				b.ContactName,
				b.OwnerID,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}
	return f, nil
}

// WriteScheduleFile writes the workbook for the given rooms to path.
func WriteScheduleFile(path string, rooms []models.Room) error {
	f, err := ScheduleWorkbook(rooms)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// Package export renders crops and tasks as an xlsx workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"agrismart/entities"
)

const (
	SheetCrops = "Crops"
	SheetTasks = "Tasks"
)

var (
	cropHeader = []any{"ID", "Name", "Variety", "Planted", "Status"}
	taskHeader = []any{"ID", "Task", "Crop", "Due", "Completed"}
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Workbook builds a two-sheet workbook. Rows keep the order they are given.
func Workbook(crops []entities.Crop, tasks []entities.TaskWithCropName) (*excelize.File, error) {
	f := excelize.NewFile()
	// NewFile starts with Sheet1
	if err := f.SetSheetName("Sheet1", SheetCrops); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetTasks); err != nil {
		return nil, err
	}

	if err := writeRow(f, SheetCrops, 1, cropHeader); err != nil {
		return nil, err
	}
	for i, c := range crops {
		row := []any{c.ID, c.Name, deref(c.Variety), deref(c.PlantedDate), c.Status}
		if err := writeRow(f, SheetCrops, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetTasks, 1, taskHeader); err != nil {
		return nil, err
	}
	for i, t := range tasks {
		done := "no"
		if t.Completed {
			done = "yes"
		}
		row := []any{t.ID, t.TaskName, deref(t.CropName), deref(t.DueDate), done}
		if err := writeRow(f, SheetTasks, i+2, row); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(SheetCrops, 1, 1, bold)
		_ = f.SetRowStyle(SheetTasks, 1, 1, bold)
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

package characters

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name used for character exports.
const ExportSheet = "Characters"

var exportHeader = []interface{}{"ID", "Name", "Modified"}

// WriteWorkbook writes the view's characters, in display order, as an xlsx workbook.
func WriteWorkbook(w io.Writer, vm ViewModel) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, c := range vm.Characters {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		modified := ""
		if !c.Modified.IsZero() {
			modified = c.Modified.UTC().Format(time.RFC3339)
		}
		row := []interface{}{c.ID, c.Name, modified}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportFilename names the download for a sort state.
func ExportFilename(vm ViewModel) string {
	return fmt.Sprintf("characters-%s-%s.xlsx", vm.OrderBy, vm.Order)
}

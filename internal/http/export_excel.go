package httpapi

import (
	"bytes"
	"fmt"
	"strconv"

	"sitedesk/internal/service"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names, matching the spreadsheet layout users exchange.
const (
	SheetSites       = "현장목록"
	SheetStaff       = "소장직원"
	SheetAssignments = "배정현황"
)

// SiteSheetHeader 현장목록 columns.
var SiteSheetHeader = []string{
	"현장명", "위치", "발주처", "건축사", "공사금액(억)",
	"착공일", "준공예정일", "공정률(%)", "상태", "배정소장", "특이사항", "비고",
}

// StaffSheetHeader 소장직원 columns.
var StaffSheetHeader = []string{
	"이름", "직급", "연락처", "이메일", "자격증", "입사일", "상태", "배정현장",
}

// AssignSheetHeader 배정현황 columns.
var AssignSheetHeader = []string{
	"현장명", "위치", "소장/직원", "직급", "배정일",
}

// GenerateWorkbook renders one export run as an xlsx workbook with the three
// sheets. Empty collections still get their header row.
func GenerateWorkbook(data *service.ExportData) ([]byte, error) {
	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteToBuffer needs the file open

	if err := f.SetSheetName("Sheet1", SheetSites); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetStaff); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetAssignments); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	siteRows := make([][]any, 0, len(data.Sites))
	for _, r := range data.Sites {
		siteRows = append(siteRows, []any{
			r.Name, r.Location, r.Client, r.Architect, r.Amount,
			r.StartDate, r.EndDate, r.Progress, r.Status, r.StaffNames,
			r.Special, r.Note,
		})
	}
	if err := writeSheet(f, SheetSites, SiteSheetHeader, siteRows); err != nil {
		return nil, err
	}

	staffRows := make([][]any, 0, len(data.Staff))
	for _, r := range data.Staff {
		staffRows = append(staffRows, []any{
			r.Name, r.Role, r.Phone, r.Email, r.Cert, r.JoinDate, r.Status, r.SiteNames,
		})
	}
	if err := writeSheet(f, SheetStaff, StaffSheetHeader, staffRows); err != nil {
		return nil, err
	}

	assignRows := make([][]any, 0, len(data.Assignments))
	for _, r := range data.Assignments {
		assignRows = append(assignRows, []any{
			r.SiteName, r.Location, r.StaffName, r.Role, r.AssignedAt,
		})
	}
	if err := writeSheet(f, SheetAssignments, AssignSheetHeader, assignRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header %s: %w", sheet, err)
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %s: %w", sheet, err)
			}
		}
	}
	return nil
}

// ParseWorkbook reads the sheets an import may carry. Either sheet may be
// absent; columns are located by header name so column order does not
// matter. Returned slices are nil when the sheet is missing.
func ParseWorkbook(b []byte) (sites []service.SiteSheetRow, staff []service.StaffSheetRow, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if hasSheet(f, SheetSites) {
		rows, err := f.GetRows(SheetSites)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", SheetSites, err)
		}
		for _, rec := range recordsByHeader(rows) {
			sites = append(sites, service.SiteSheetRow{
				Name:       rec["현장명"],
				Location:   rec["위치"],
				Client:     rec["발주처"],
				Architect:  rec["건축사"],
				Amount:     parseFloatCell(rec["공사금액(억)"]),
				StartDate:  rec["착공일"],
				EndDate:    rec["준공예정일"],
				Progress:   parseIntCell(rec["공정률(%)"]),
				Status:     rec["상태"],
				StaffNames: rec["배정소장"],
				Special:    rec["특이사항"],
				Note:       rec["비고"],
			})
		}
	}

	if hasSheet(f, SheetStaff) {
		rows, err := f.GetRows(SheetStaff)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", SheetStaff, err)
		}
		for _, rec := range recordsByHeader(rows) {
			staff = append(staff, service.StaffSheetRow{
				Name:      rec["이름"],
				Role:      rec["직급"],
				Phone:     rec["연락처"],
				Email:     rec["이메일"],
				Cert:      rec["자격증"],
				JoinDate:  rec["입사일"],
				Status:    rec["상태"],
				SiteNames: rec["배정현장"],
			})
		}
	}

	return sites, staff, nil
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// recordsByHeader turns a header row + data rows into header-keyed maps.
func recordsByHeader(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := map[string]string{}
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

func parseFloatCell(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntCell(s string) int {
	// progress cells may come back as "67" or "67.0" depending on the editor
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return 0
}

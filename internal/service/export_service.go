package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"

	"go.uber.org/zap"
)

// SiteSheetRow is one row of the 현장목록 sheet.
type SiteSheetRow struct {
	Name       string
	Location   string
	Client     string
	Architect  string
	Amount     float64
	StartDate  string
	EndDate    string
	Progress   int
	Status     string
	StaffNames string // joined "이름(직급)" of assigned staff
	Special    string
	Note       string
}

// StaffSheetRow is one row of the 소장직원 sheet.
type StaffSheetRow struct {
	Name      string
	Role      string
	Phone     string
	Email     string
	Cert      string
	JoinDate  string
	Status    string
	SiteNames string // joined names of assigned sites
}

// AssignSheetRow is one cross-joined row of the 배정현황 sheet.
type AssignSheetRow struct {
	SiteName   string
	Location   string
	StaffName  string
	Role       string
	AssignedAt string // date part only
}

// ExportData is everything one export run produces.
type ExportData struct {
	Filename    string
	Sites       []SiteSheetRow
	Staff       []StaffSheetRow
	Assignments []AssignSheetRow
	Counts      string
}

// ExportService assembles spreadsheet rows by cross-joining the collections,
// records export history, and bulk-replaces collections on import.
type ExportService struct {
	store  *repository.Store
	assign *AssignService
	logger *zap.Logger
}

func NewExportService(store *repository.Store, assign *AssignService, logger *zap.Logger) *ExportService {
	return &ExportService{store: store, assign: assign, logger: logger}
}

// BuildExport snapshots all three entity collections into sheet rows.
func (s *ExportService) BuildExport(ctx context.Context) *ExportData {
	data := &ExportData{
		Filename: fmt.Sprintf("현장관리_%s.xlsx", time.Now().Format("20060102_1504")),
	}

	for _, site := range s.store.Sites.GetAll(ctx) {
		var names []string
		for _, st := range s.assign.StaffForSite(ctx, site.ID) {
			names = append(names, fmt.Sprintf("%s(%s)", st.Name, st.Role))
		}
		data.Sites = append(data.Sites, SiteSheetRow{
			Name:       site.Name,
			Location:   site.Location,
			Client:     site.Client,
			Architect:  site.Architect,
			Amount:     site.Amount,
			StartDate:  site.StartDate,
			EndDate:    site.EndDate,
			Progress:   site.Progress,
			Status:     site.Status,
			StaffNames: strings.Join(names, ", "),
			Special:    site.Special,
			Note:       site.Note,
		})
	}

	for _, st := range s.store.Staff.GetAll(ctx) {
		var names []string
		for _, site := range s.assign.SitesForStaff(ctx, st.ID) {
			names = append(names, site.Name)
		}
		data.Staff = append(data.Staff, StaffSheetRow{
			Name:      st.Name,
			Role:      st.Role,
			Phone:     st.Phone,
			Email:     st.Email,
			Cert:      st.Cert,
			JoinDate:  st.JoinDate,
			Status:    st.Status,
			SiteNames: strings.Join(names, ", "),
		})
	}

	for _, row := range s.assign.Rows(ctx) {
		assignedAt := row.Assignment.AssignedAt
		if len(assignedAt) >= 10 {
			assignedAt = assignedAt[:10]
		}
		data.Assignments = append(data.Assignments, AssignSheetRow{
			SiteName:   row.Site.Name,
			Location:   row.Site.Location,
			StaffName:  row.Staff.Name,
			Role:       row.Staff.Role,
			AssignedAt: assignedAt,
		})
	}

	data.Counts = fmt.Sprintf("현장:%d, 직원:%d, 배정:%d",
		len(data.Sites), len(data.Staff), len(data.Assignments))
	return data
}

// RecordExport appends one export-history entry.
func (s *ExportService) RecordExport(ctx context.Context, data *ExportData, operator string) domain.ExportHistoryEntry {
	if operator == "" {
		operator = "관리자"
	}
	entry := s.store.ExportHistory.Add(ctx, domain.ExportHistoryEntry{
		Filename: data.Filename,
		SavedAt:  time.Now().UTC().Format(time.RFC3339),
		Counts:   data.Counts,
		Operator: operator,
	})
	s.logger.Info("export recorded", zap.String("filename", data.Filename))
	return entry
}

// History lists export-history entries; ClearHistory bulk-clears them.
func (s *ExportService) History(ctx context.Context) []domain.ExportHistoryEntry {
	return s.store.ExportHistory.GetAll(ctx)
}

func (s *ExportService) ClearHistory(ctx context.Context) {
	s.store.ExportHistory.ReplaceAll(ctx, nil)
}

// ImportSites bulk-replaces the sites collection from sheet rows. Ids and
// timestamps are regenerated; missing status and role cells fall back to the
// record defaults.
func (s *ExportService) ImportSites(ctx context.Context, rows []SiteSheetRow) int {
	s.store.Sites.ReplaceAll(ctx, nil)
	for _, r := range rows {
		status := r.Status
		if status == "" {
			status = domain.SiteStatusPending
		}
		s.store.Sites.Add(ctx, domain.Site{
			Name:      r.Name,
			Location:  r.Location,
			Client:    r.Client,
			Architect: r.Architect,
			Amount:    r.Amount,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Progress:  domain.ClampProgress(r.Progress),
			Status:    status,
			Special:   r.Special,
			Note:      r.Note,
		})
	}
	s.logger.Info("sites imported", zap.Int("count", len(rows)))
	return len(rows)
}

// ImportStaff bulk-replaces the staff collection from sheet rows.
func (s *ExportService) ImportStaff(ctx context.Context, rows []StaffSheetRow) int {
	s.store.Staff.ReplaceAll(ctx, nil)
	for _, r := range rows {
		role := r.Role
		if role == "" {
			role = domain.RoleEmployee
		}
		status := r.Status
		if status == "" {
			status = domain.StaffStatusActive
		}
		s.store.Staff.Add(ctx, domain.Staff{
			Name:     r.Name,
			Role:     role,
			Phone:    r.Phone,
			Email:    r.Email,
			Cert:     r.Cert,
			JoinDate: r.JoinDate,
			Status:   status,
		})
	}
	s.logger.Info("staff imported", zap.Int("count", len(rows)))
	return len(rows)
}

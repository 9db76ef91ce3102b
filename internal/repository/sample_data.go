package repository

import (
	"context"
	"time"

	"sitedesk/internal/domain"
)

// InitIfEmpty seeds sample data on first run, so a fresh install has
// something to show.
func (s *Store) InitIfEmpty(ctx context.Context) {
	if len(s.Sites.GetAll(ctx)) == 0 {
		s.ResetWithSampleData(ctx)
	}
}

// ResetWithSampleData replaces every collection with the bundled sample set:
// six sites, eight staff, five assignments and nine schedule phases.
func (s *Store) ResetWithSampleData(ctx context.Context) {
	s.logger.Info("seeding sample data")

	today := time.Now()
	day := func(n int) string {
		return today.AddDate(0, 0, n).Format("2006-01-02")
	}

	s.Sites.ReplaceAll(ctx, nil)
	s.Staff.ReplaceAll(ctx, nil)
	s.Assignments.ReplaceAll(ctx, nil)
	s.Schedules.ReplaceAll(ctx, nil)
	s.ExportHistory.ReplaceAll(ctx, nil)

	sites := []domain.Site{
		{Name: "강남 오피스텔 신축", Location: "서울 강남구 역삼동", Client: "(주)강남개발", Amount: 85, StartDate: day(-180), EndDate: day(90), Progress: 67, Status: domain.SiteStatusActive, Note: "지하 3층 지상 15층"},
		{Name: "판교 물류센터 증축", Location: "경기 성남시 판교동", Client: "판교로지스", Amount: 42, StartDate: day(-90), EndDate: day(120), Progress: 35, Status: domain.SiteStatusActive},
		{Name: "인천 공장 리모델링", Location: "인천시 남동구 논현동", Client: "인천제조(주)", Amount: 28, StartDate: day(-240), EndDate: day(30), Progress: 88, Status: domain.SiteStatusActive, Note: "전기 설비 교체 포함"},
		{Name: "수원 아파트 단지", Location: "경기 수원시 영통구", Client: "수원주택공사", Amount: 220, StartDate: day(-30), EndDate: day(540), Progress: 12, Status: domain.SiteStatusActive, Note: "5개동 400세대"},
		{Name: "부산 해운대 상가", Location: "부산 해운대구 우동", Client: "해운대부동산", Amount: 55, StartDate: day(14), EndDate: day(300), Progress: 0, Status: domain.SiteStatusPending, Note: "착공 준비 중"},
		{Name: "대전 역사 리모델링", Location: "대전시 동구 중앙로", Client: "코레일", Amount: 38, StartDate: day(-365), EndDate: day(-10), Progress: 100, Status: domain.SiteStatusDone, Note: "준공 완료"},
	}
	siteIDs := make([]string, len(sites))
	for i, site := range sites {
		siteIDs[i] = s.Sites.Add(ctx, site).ID
	}

	staff := []domain.Staff{
		{Name: "김현수", Role: domain.RoleManager, Phone: "010-1234-5678", Email: "kim@example.com", Cert: "건축사, 건설안전기사", JoinDate: "2018-03-01", Status: domain.StaffStatusActive},
		{Name: "이민준", Role: domain.RoleManager, Phone: "010-2345-6789", Email: "lee@example.com", Cert: "토목기사, 품질관리기사", JoinDate: "2019-07-15", Status: domain.StaffStatusActive},
		{Name: "박서연", Role: domain.RoleDeputyManager, Phone: "010-3456-7890", Email: "park@example.com", Cert: "건축기사", JoinDate: "2020-02-01", Status: domain.StaffStatusActive},
		{Name: "최지훈", Role: domain.RoleSiteAgent, Phone: "010-4567-8901", Email: "choi@example.com", Cert: "건축산업기사", JoinDate: "2021-05-10", Status: domain.StaffStatusActive},
		{Name: "정수아", Role: domain.RoleSafetyOfficer, Phone: "010-5678-9012", Email: "jung@example.com", Cert: "산업안전기사", JoinDate: "2022-01-03", Status: domain.StaffStatusActive},
		{Name: "한동훈", Role: domain.RoleManager, Phone: "010-6789-0123", Email: "han@example.com", Cert: "토목기사", JoinDate: "2017-09-01", Status: domain.StaffStatusActive},
		{Name: "윤지영", Role: domain.RoleEmployee, Phone: "010-7890-1234", Email: "yoon@example.com", JoinDate: "2023-03-15", Status: domain.StaffStatusActive},
		{Name: "강민호", Role: domain.RoleSiteAgent, Phone: "010-8901-2345", Email: "kang@example.com", Cert: "건설기계기사", JoinDate: "2020-11-01", Status: domain.StaffStatusActive},
	}
	staffIDs := make([]string, len(staff))
	for i, st := range staff {
		staffIDs[i] = s.Staff.Add(ctx, st).ID
	}

	pairs := [][2]int{{0, 0}, {0, 2}, {1, 1}, {2, 5}, {3, 7}}
	for _, p := range pairs {
		if _, err := s.CreateAssignment(ctx, siteIDs[p[0]], staffIDs[p[1]]); err != nil {
			s.logger.Warn("sample assignment skipped")
		}
	}

	schedules := []domain.Schedule{
		{SiteID: siteIDs[0], Name: "기초 공사", StartDate: day(-180), EndDate: day(-120), Progress: 100, Manager: "김현수", Status: domain.ScheduleStatusDone},
		{SiteID: siteIDs[0], Name: "골조 공사", StartDate: day(-120), EndDate: day(-30), Progress: 100, Manager: "김현수", Status: domain.ScheduleStatusDone},
		{SiteID: siteIDs[0], Name: "외장 공사", StartDate: day(-30), EndDate: day(45), Progress: 55, Manager: "박서연", Status: domain.ScheduleStatusActive},
		{SiteID: siteIDs[0], Name: "내장 공사", StartDate: day(20), EndDate: day(80), Progress: 0, Manager: "박서연", Status: domain.ScheduleStatusPlanned},
		{SiteID: siteIDs[1], Name: "터파기", StartDate: day(-90), EndDate: day(-60), Progress: 100, Manager: "이민준", Status: domain.ScheduleStatusDone},
		{SiteID: siteIDs[1], Name: "골조 증축", StartDate: day(-60), EndDate: day(60), Progress: 45, Manager: "이민준", Status: domain.ScheduleStatusActive},
		{SiteID: siteIDs[2], Name: "철거 작업", StartDate: day(-240), EndDate: day(-200), Progress: 100, Manager: "한동훈", Status: domain.ScheduleStatusDone},
		{SiteID: siteIDs[2], Name: "전기 설비", StartDate: day(-200), EndDate: day(-60), Progress: 100, Manager: "한동훈", Status: domain.ScheduleStatusDone},
		{SiteID: siteIDs[2], Name: "마감 공사", StartDate: day(-60), EndDate: day(30), Progress: 75, Manager: "한동훈", Status: domain.ScheduleStatusDelayed},
	}
	for _, sc := range schedules {
		s.Schedules.Add(ctx, sc)
	}
}

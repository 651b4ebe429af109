package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"report-service/internal/model"
	"report-service/internal/repository"
	"report-service/internal/tz"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
)

// ReportService runs the reporting pipeline: shard federation, aggregation,
// directory enrichment and role filtering. The caller's role is an explicit
// parameter on every operation; nothing is kept between requests.
type ReportService struct {
	calls         *repository.CallRepository
	directory     *repository.DirectoryRepository
	queryTimeout  time.Duration
	recordingsDir string
}

func NewReportService(calls *repository.CallRepository, directory *repository.DirectoryRepository, queryTimeout time.Duration, recordingsDir string) *ReportService {
	return &ReportService{
		calls:         calls,
		directory:     directory,
		queryTimeout:  queryTimeout,
		recordingsDir: recordingsDir,
	}
}

// MonthlyStats returns the per-operator usage summary of one month, visible
// to the given role.
func (s *ReportService) MonthlyStats(ctx context.Context, role model.Role, year int, month time.Month) ([]model.OperatorStat, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	records, err := s.calls.MonthlyRecords(ctx, year, month)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(records)

	names, groups, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		if name, ok := names[stats[i].SenderID]; ok {
			stats[i].DisplayName = &name
		}
		if group, ok := groups[stats[i].SenderID]; ok {
			stats[i].GroupName = &group
		}
	}

	return model.FilterStats(role, stats), nil
}

// MonthlyDetail returns every qualifying call of one operator in one month,
// ordered by start time, timestamps in display time.
func (s *ReportService) MonthlyDetail(ctx context.Context, role model.Role, senderID, year int, month time.Month) ([]model.CallDetail, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	records, err := s.calls.OperatorRecords(ctx, senderID, year, month)
	if err != nil {
		return nil, err
	}

	names, groups, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]model.CallDetail, 0, len(records))
	for _, record := range records {
		detail := model.CallDetail{
			SenderID:        record.SenderID,
			StartTime:       tz.ToDisplay(record.StartTime),
			EndTime:         tz.ToDisplay(record.EndTime),
			DurationSeconds: math.Round(float64(record.DurationMs)/10) / 100,
		}
		if name, ok := names[record.SenderID]; ok {
			detail.DisplayName = &name
		}
		if group, ok := groups[record.SenderID]; ok {
			detail.GroupName = &group
		}
		details = append(details, detail)
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].StartTime.Before(details[j].StartTime)
	})

	return model.FilterDetails(role, details), nil
}

// DaySessions returns the audio-session log of one display-local calendar
// day. The user role has no access to session data at all.
func (s *ReportService) DaySessions(ctx context.Context, role model.Role, date time.Time) ([]model.SessionRecord, error) {
	if role == model.RoleUser {
		return nil, ErrPermissionDenied
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	from, to := tz.DayRange(date.Year(), date.Month(), date.Day())
	sessions, err := s.directory.DaySessions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	groups, err := s.directory.OperatorGroups(ctx)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		sessions[i].StartTime = tz.ToDisplay(sessions[i].StartTime)
		sessions[i].EndTime = tz.ToDisplay(sessions[i].EndTime)
		if id, ok := numericCaller(sessions[i].Caller); ok {
			if group, found := groups[id]; found {
				sessions[i].GroupName = &group
			}
		}
	}

	return model.FilterSessions(role, sessions), nil
}

// SessionFilePath resolves the on-disk audio path of one session for the
// player/export collaborator.
func (s *ReportService) SessionFilePath(ctx context.Context, role model.Role, sessionID uuid.UUID) (string, error) {
	if role == model.RoleUser {
		return "", ErrPermissionDenied
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	path, err := s.directory.SessionFilePath(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return filepath.Join(s.recordingsDir, path), nil
}

// SessionBounds returns the selectable calendar range of the session log in
// display time: earliest recorded day through today.
func (s *ReportService) SessionBounds(ctx context.Context) (model.DateRange, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	bounds := model.DateRange{To: tz.Today()}

	min, ok, err := s.directory.MinSessionDate(ctx)
	if err != nil {
		return model.DateRange{}, err
	}
	if ok {
		bounds.From = tz.ToDisplay(min)
	} else {
		bounds.From = bounds.To
	}
	return bounds, nil
}

// AvailableYears lists the years with at least one call shard.
func (s *ReportService) AvailableYears(ctx context.Context) ([]int, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.calls.Years(ctx)
}

// AvailableMonths lists the months of a year that have call traffic.
func (s *ReportService) AvailableMonths(ctx context.Context, year int) ([]int, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.calls.Months(ctx, year)
}

// GroupNames lists the operator groups visible to the role, sorted.
func (s *ReportService) GroupNames(ctx context.Context, role model.Role) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	names, err := s.directory.GroupNames(ctx)
	if err != nil {
		return nil, err
	}
	return model.FilterGroupNames(role, names), nil
}

func (s *ReportService) loadDirectory(ctx context.Context) (map[int]string, map[int]string, error) {
	names, err := s.directory.OperatorNames(ctx)
	if err != nil {
		return nil, nil, err
	}
	groups, err := s.directory.OperatorGroups(ctx)
	if err != nil {
		return nil, nil, err
	}
	return names, groups, nil
}

// bound caps every pipeline run so a federation over slow shards cannot hang
// the caller.
func (s *ReportService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func numericCaller(caller string) (int, bool) {
	id, err := strconv.Atoi(caller)
	if err != nil {
		return 0, false
	}
	return id, true
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"report-service/internal/db"
	"report-service/internal/model"
)

// DirectoryRepository reads the identity store: operator names and group
// membership for report enrichment, plus the audio-session log. Lookups are
// cheap and rebuilt on every request, never cached.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(database *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: database}
}

// OperatorNames maps numeric radio identifiers to display names. Entries
// with a non-numeric stored identifier are non-operator callers and are
// dropped.
func (r *DirectoryRepository) OperatorNames(ctx context.Context) (map[int]string, error) {
	if err := r.ping(ctx); err != nil {
		return nil, err
	}

	var rows []struct {
		Abonentid string
		Name      string
	}
	err := r.db.WithContext(ctx).
		Table("abonents").
		Select("abonentid, name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row.Abonentid)
		if err != nil {
			continue
		}
		names[id] = row.Name
	}
	return names, nil
}

// OperatorGroups maps numeric radio identifiers to their group name.
func (r *DirectoryRepository) OperatorGroups(ctx context.Context) (map[int]string, error) {
	if err := r.ping(ctx); err != nil {
		return nil, err
	}

	var rows []struct {
		Abonentid string
		Groupname string
	}
	err := r.db.WithContext(ctx).
		Table("abonent_group ag").
		Select("a.abonentid, g.groupname").
		Joins("JOIN abonents a ON a.ab_id = ag.ab_id").
		Joins("JOIN groups g ON g.groupid = ag.group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groups := make(map[int]string, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row.Abonentid)
		if err != nil {
			continue
		}
		groups[id] = row.Groupname
	}
	return groups, nil
}

// GroupNames lists all group names, sorted.
func (r *DirectoryRepository) GroupNames(ctx context.Context) ([]string, error) {
	if err := r.ping(ctx); err != nil {
		return nil, err
	}

	names := make([]string, 0)
	err := r.db.WithContext(ctx).
		Table("groups").
		Order("groupname").
		Pluck("groupname", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DaySessions returns the audio sessions whose start falls inside the given
// storage-time range, joined with the directory for caller names. Callers
// without a directory entry keep a nil name.
func (r *DirectoryRepository) DaySessions(ctx context.Context, from, to time.Time) ([]model.SessionRecord, error) {
	if err := r.ping(ctx); err != nil {
		return nil, err
	}

	var rows []struct {
		ID            uuid.UUID
		Caller        string
		Name          *string
		Datetimestart time.Time
		Datetimeend   time.Time
	}
	err := r.db.WithContext(ctx).
		Table("sessions s").
		Select("s.id, s.caller, a.name, s.datetimestart, s.datetimeend").
		Joins("LEFT JOIN abonents a ON a.abonentid = s.caller").
		Where("s.datetimestart BETWEEN ? AND ?", from, to).
		Order("s.datetimestart").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]model.SessionRecord, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, model.SessionRecord{
			ID:         row.ID,
			Caller:     row.Caller,
			CallerName: row.Name,
			StartTime:  row.Datetimestart,
			EndTime:    row.Datetimeend,
		})
	}
	return sessions, nil
}

// SessionFilePath resolves the stored audio file path of one session.
func (r *DirectoryRepository) SessionFilePath(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if err := r.ping(ctx); err != nil {
		return "", err
	}

	var row struct {
		Filepath string
	}
	err := r.db.WithContext(ctx).
		Table("sessions").
		Select("filepath").
		Where("id = ?", sessionID).
		Take(&row).Error
	if err != nil {
		return "", err
	}
	return row.Filepath, nil
}

// MinSessionDate returns the earliest session start in storage time, or
// false when the log is empty.
func (r *DirectoryRepository) MinSessionDate(ctx context.Context) (time.Time, bool, error) {
	if err := r.ping(ctx); err != nil {
		return time.Time{}, false, err
	}

	var min sql.NullTime
	err := r.db.WithContext(ctx).
		Table("sessions").
		Select("MIN(datetimestart)").
		Scan(&min).Error
	if err != nil {
		return time.Time{}, false, err
	}
	if !min.Valid {
		return time.Time{}, false, nil
	}
	return min.Time, true, nil
}

func (r *DirectoryRepository) ping(ctx context.Context) error {
	if err := db.Ping(ctx, r.db); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

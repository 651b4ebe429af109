package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"report-service/internal/db"
	"report-service/internal/model"
	"report-service/internal/tz"
)

// CallRepository reads the weekly call shards. Every monthly query fans out
// to one parameterized select per resolved shard and fans the rows back in;
// shards are disjoint by week, so nothing is deduplicated.
type CallRepository struct {
	db *gorm.DB
}

func NewCallRepository(database *gorm.DB) *CallRepository {
	return &CallRepository{db: database}
}

type shardRow struct {
	Senderid  int
	Starttime time.Time
	Endtime   time.Time
	Duration  int64
}

// MonthlyRecords returns the qualifying voice calls of all operator radios
// for one month.
func (r *CallRepository) MonthlyRecords(ctx context.Context, year int, month time.Month) ([]model.CallRecord, error) {
	return r.federate(ctx, year, month, func(query *gorm.DB) *gorm.DB {
		return query.Where("senderid BETWEEN ? AND ?", model.MinOperatorID, model.MaxOperatorID)
	})
}

// OperatorRecords returns the qualifying voice calls of a single radio for
// one month.
func (r *CallRepository) OperatorRecords(ctx context.Context, senderID, year int, month time.Month) ([]model.CallRecord, error) {
	return r.federate(ctx, year, month, func(query *gorm.DB) *gorm.DB {
		return query.Where("senderid = ?", senderID)
	})
}

func (r *CallRepository) federate(ctx context.Context, year int, month time.Month, applySender func(*gorm.DB) *gorm.DB) ([]model.CallRecord, error) {
	if err := r.ping(ctx); err != nil {
		return nil, err
	}

	from, to := tz.MonthRange(year, month)

	var records []model.CallRecord
	for _, shard := range model.MonthShards(year, month) {
		exists, err := r.shardExists(ctx, shard)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		var rows []shardRow
		query := r.db.WithContext(ctx).
			Table(shard.Table()).
			Select("senderid, starttime, endtime, duration").
			Where("starttime BETWEEN ? AND ?", from, to).
			Where("calltype = ?", model.VoiceCallType)
		query = applySender(query)

		if err := query.Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			records = append(records, model.CallRecord{
				SenderID:   row.Senderid,
				StartTime:  row.Starttime,
				EndTime:    row.Endtime,
				DurationMs: row.Duration,
			})
		}
	}

	return records, nil
}

// Years lists the years that have at least one shard table, ascending.
func (r *CallRepository) Years(ctx context.Context) ([]int, error) {
	tables, err := r.shardTables(ctx, "%")
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, table := range tables {
		year, ok := model.ShardYear(table)
		if !ok || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// Months lists the months of a year that have call traffic, ascending. Every
// shard of the year is probed because boundary shards carry days of two
// months.
func (r *CallRepository) Months(ctx context.Context, year int) ([]int, error) {
	tables, err := r.shardTables(ctx, fmt.Sprintf("%d%%", year))
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	months := make([]int, 0)
	for _, table := range tables {
		var shardMonths []int
		err := r.db.WithContext(ctx).
			Table(table).
			Distinct().
			Pluck("MONTH(starttime)", &shardMonths).Error
		if err != nil {
			return nil, err
		}
		for _, month := range shardMonths {
			if month < 1 || month > 12 || seen[month] {
				continue
			}
			seen[month] = true
			months = append(months, month)
		}
	}
	sort.Ints(months)
	return months, nil
}

func (r *CallRepository) shardTables(ctx context.Context, yearPattern string) ([]string, error) {
	if err := r.ping(ctx); err != nil {
		return nil, err
	}

	var tables []string
	err := r.db.WithContext(ctx).
		Table("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where("table_name LIKE ?", "rptbiz"+yearPattern).
		Order("table_name").
		Pluck("table_name", &tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// shardExists probes the catalog so a missing week table is skipped instead
// of failing the whole federation.
func (r *CallRepository) shardExists(ctx context.Context, shard model.ShardID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where("table_name = ?", shard.Table()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CallRepository) ping(ctx context.Context) error {
	if err := db.Ping(ctx, r.db); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

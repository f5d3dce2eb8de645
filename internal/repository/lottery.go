package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/spinmall/backend/pkg/xredis"
	"gorm.io/gorm"
)

type GetActivitiesFilter struct {
	ActiveOnly bool
	Offset     int
	Limit      int
}

type GetRecordsFilter struct {
	UserID     string
	ActivityID string
	Offset     int
	Limit      int
}

type LotteryRepository interface {
	CreateType(ctx context.Context, lotteryType *entity.LotteryType) error
	GetTypes(ctx context.Context) ([]entity.LotteryType, error)
	GetTypeByID(ctx context.Context, id string) (*entity.LotteryType, error)

	CreateActivity(ctx context.Context, activity *entity.LotteryActivity) error
	UpdateActivity(ctx context.Context, activity *entity.LotteryActivity) error
	DeleteActivity(ctx context.Context, id string) error
	GetActivityByID(ctx context.Context, id string) (*entity.LotteryActivity, error)
	GetCachedActivityByID(ctx context.Context, id string) (*entity.LotteryActivity, error)
	GetActivities(ctx context.Context, filter GetActivitiesFilter) ([]entity.LotteryActivity, error)

	CreateRecord(ctx context.Context, record *entity.LotteryRecord) error
	GetRecords(ctx context.Context, filter GetRecordsFilter) ([]entity.LotteryRecord, error)
	CountRecordsByUserActivity(
		ctx context.Context, userID, activityID string, begin, end time.Time) (int64, error)

	GetParticipation(ctx context.Context, userID, activityID string) (*entity.LotteryParticipation, error)
	CheckAndCountDraw(
		ctx context.Context, userID, activityID, day string, totalLimit, dailyLimit int) error
}

type lotteryRepository struct {
	redisClient xredis.Client
}

func NewLotteryRepository(redisClient xredis.Client) *lotteryRepository {
	return &lotteryRepository{redisClient: redisClient}
}

func (r *lotteryRepository) CreateType(ctx context.Context, lotteryType *entity.LotteryType) error {
	return xcontext.DB(ctx).Create(lotteryType).Error
}

func (r *lotteryRepository) GetTypes(ctx context.Context) ([]entity.LotteryType, error) {
	var result []entity.LotteryType
	if err := xcontext.DB(ctx).Order("code ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) GetTypeByID(ctx context.Context, id string) (*entity.LotteryType, error) {
	var record entity.LotteryType
	if err := xcontext.DB(ctx).Take(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *lotteryRepository) CreateActivity(ctx context.Context, activity *entity.LotteryActivity) error {
	return xcontext.DB(ctx).Create(activity).Error
}

func (r *lotteryRepository) UpdateActivity(ctx context.Context, activity *entity.LotteryActivity) error {
	tx := xcontext.DB(ctx).
		Model(&entity.LotteryActivity{}).
		Where("id = ?", activity.ID).
		Select(
			"title", "description", "banner_image", "start_time", "end_time",
			"is_active", "daily_limit", "total_limit", "points_cost", "prizes",
		).
		Updates(activity)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateActivity(ctx, activity.ID)
	return nil
}

func (r *lotteryRepository) DeleteActivity(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.LotteryActivity{}, "id = ?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateActivity(ctx, id)
	return nil
}

// GetActivityByID always reads the database. The settlement transaction uses
// this one so that eligibility is checked against the freshest state.
func (r *lotteryRepository) GetActivityByID(
	ctx context.Context, id string,
) (*entity.LotteryActivity, error) {
	var record entity.LotteryActivity
	err := xcontext.DB(ctx).
		Preload("LotteryType").
		Take(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetCachedActivityByID serves the public read path through redis when a
// client is configured, falling back to the database on any cache problem.
func (r *lotteryRepository) GetCachedActivityByID(
	ctx context.Context, id string,
) (*entity.LotteryActivity, error) {
	if r.redisClient == nil {
		return r.GetActivityByID(ctx, id)
	}

	key := redisKeyLotteryActivity(id)
	if cached, err := r.redisClient.Get(ctx, key); err == nil {
		var record entity.LotteryActivity
		if err := json.Unmarshal([]byte(cached), &record); err == nil {
			return &record, nil
		}
	} else if !errors.Is(err, xredis.ErrNil) {
		xcontext.Logger(ctx).Warnf("Cannot get activity from cache: %v", err)
	}

	record, err := r.GetActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(record); err == nil {
		ttl := xcontext.Configs(ctx).Lottery.ActivityCacheTTL
		if err := r.redisClient.Set(ctx, key, string(b), ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache activity: %v", err)
		}
	}

	return record, nil
}

func (r *lotteryRepository) invalidateActivity(ctx context.Context, id string) {
	if r.redisClient == nil {
		return
	}

	if err := r.redisClient.Del(ctx, redisKeyLotteryActivity(id)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate activity cache: %v", err)
	}
}

func (r *lotteryRepository) GetActivities(
	ctx context.Context, filter GetActivitiesFilter,
) ([]entity.LotteryActivity, error) {
	tx := xcontext.DB(ctx).
		Preload("LotteryType").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}

	var result []entity.LotteryActivity
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) CreateRecord(ctx context.Context, record *entity.LotteryRecord) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *lotteryRepository) GetRecords(
	ctx context.Context, filter GetRecordsFilter,
) ([]entity.LotteryRecord, error) {
	tx := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}

	if filter.ActivityID != "" {
		tx = tx.Where("activity_id = ?", filter.ActivityID)
	}

	var result []entity.LotteryRecord
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) CountRecordsByUserActivity(
	ctx context.Context, userID, activityID string, begin, end time.Time,
) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.LotteryRecord{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID)

	if !begin.IsZero() {
		tx = tx.Where("created_at >= ? AND created_at < ?", begin, end)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *lotteryRepository) GetParticipation(
	ctx context.Context, userID, activityID string,
) (*entity.LotteryParticipation, error) {
	var record entity.LotteryParticipation
	err := xcontext.DB(ctx).
		Take(&record, "user_id = ? AND activity_id = ?", userID, activityID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// CheckAndCountDraw advances the per user per activity draw counters, but only
// if the given limits still allow another draw today. A zero limit means
// unlimited. When no counter row advanced, it returns gorm.ErrRecordNotFound
// and the caller decides which limit was hit by re-reading the row.
func (r *lotteryRepository) CheckAndCountDraw(
	ctx context.Context, userID, activityID, day string, totalLimit, dailyLimit int,
) error {
	participation, err := r.GetParticipation(ctx, userID, activityID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		participation = &entity.LotteryParticipation{
			Base:       entity.Base{ID: userID + ":" + activityID},
			UserID:     userID,
			ActivityID: activityID,
		}

		if err := xcontext.DB(ctx).Create(participation).Error; err != nil {
			// Another draw may have created the row first.
			participation, err = r.GetParticipation(ctx, userID, activityID)
			if err != nil {
				return err
			}
		}
	} else if err != nil {
		return err
	}

	tx := xcontext.DB(ctx).
		Model(&entity.LotteryParticipation{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID)

	if totalLimit > 0 {
		tx = tx.Where("total_count < ?", totalLimit)
	}

	if participation.DailyDay == day {
		if dailyLimit > 0 {
			tx = tx.Where("daily_count < ?", dailyLimit)
		}

		tx = tx.Where("daily_day = ?", day).
			Updates(map[string]any{
				"total_count": gorm.Expr("total_count + 1"),
				"daily_count": gorm.Expr("daily_count + 1"),
			})
	} else {
		tx = tx.Where("daily_day = ?", participation.DailyDay).
			Updates(map[string]any{
				"total_count": gorm.Expr("total_count + 1"),
				"daily_count": 1,
				"daily_day":   day,
			})
	}

	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

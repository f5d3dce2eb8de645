package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spinmall/backend/internal/common"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/crypto"
	"github.com/spinmall/backend/pkg/dateutil"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LotteryDomain interface {
	CreateType(context.Context, *model.CreateLotteryTypeRequest) (*model.CreateLotteryTypeResponse, error)
	GetTypes(context.Context, *model.GetLotteryTypesRequest) (*model.GetLotteryTypesResponse, error)
	CreateActivity(context.Context, *model.CreateLotteryActivityRequest) (*model.CreateLotteryActivityResponse, error)
	UpdateActivity(context.Context, *model.UpdateLotteryActivityRequest) (*model.UpdateLotteryActivityResponse, error)
	DeleteActivity(context.Context, *model.DeleteLotteryActivityRequest) (*model.DeleteLotteryActivityResponse, error)
	GetActivities(context.Context, *model.GetLotteryActivitiesRequest) (*model.GetLotteryActivitiesResponse, error)
	GetActivity(context.Context, *model.GetLotteryActivityRequest) (*model.GetLotteryActivityResponse, error)
	Draw(context.Context, *model.DrawLotteryRequest) (*model.DrawLotteryResponse, error)
	GetMyRecords(context.Context, *model.GetMyLotteryRecordsRequest) (*model.GetMyLotteryRecordsResponse, error)
	GetActivityRecords(context.Context, *model.GetLotteryActivityRecordsRequest) (*model.GetLotteryActivityRecordsResponse, error)
}

// errDrawConflict marks a settlement that lost a race on the participation
// counters and may be retried.
var errDrawConflict = errors.New("draw counter conflict")

type lotteryDomain struct {
	lotteryRepo  repository.LotteryRepository
	userRepo     repository.UserRepository
	pointLogRepo repository.PointLogRepository
	roleVerifier *common.GlobalRoleVerifier

	// rollFn returns a uniform value in [0, 1). Tests replace it to force a
	// deterministic prize.
	rollFn func() float64
}

func NewLotteryDomain(
	lotteryRepo repository.LotteryRepository,
	userRepo repository.UserRepository,
	pointLogRepo repository.PointLogRepository,
) *lotteryDomain {
	return &lotteryDomain{
		lotteryRepo:  lotteryRepo,
		userRepo:     userRepo,
		pointLogRepo: pointLogRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo, entity.GlobalAdminRoles...),
		rollFn:       crypto.RandFloat64,
	}
}

func (d *lotteryDomain) CreateType(
	ctx context.Context, req *model.CreateLotteryTypeRequest,
) (*model.CreateLotteryTypeResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Name == "" || req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or code")
	}

	lotteryType := &entity.LotteryType{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Icon:        req.Icon,
	}

	if err := d.lotteryRepo.CreateType(ctx, lotteryType); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create lottery type: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateLotteryTypeResponse{ID: lotteryType.ID}, nil
}

func (d *lotteryDomain) GetTypes(
	ctx context.Context, req *model.GetLotteryTypesRequest,
) (*model.GetLotteryTypesResponse, error) {
	types, err := d.lotteryRepo.GetTypes(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lottery types: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.LotteryType, 0, len(types))
	for i := range types {
		result = append(result, convertLotteryType(&types[i]))
	}

	return &model.GetLotteryTypesResponse{Types: result}, nil
}

func (d *lotteryDomain) CreateActivity(
	ctx context.Context, req *model.CreateLotteryActivityRequest,
) (*model.CreateLotteryActivityResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.StartTime.IsZero() {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty start time")
	}

	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return nil, errorx.New(errorx.BadRequest, "End time must be after start time")
	}

	if req.DailyLimit < 0 || req.TotalLimit < 0 || req.PointsCost < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limits and cost must not be negative")
	}

	if _, err := d.lotteryRepo.GetTypeByID(ctx, req.LotteryTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found lottery type")
		}

		xcontext.Logger(ctx).Errorf("Cannot get lottery type: %v", err)
		return nil, errorx.Unknown
	}

	prizes := toEntityPrizes(req.Prizes)
	if err := validatePrizeTable(prizes); err != nil {
		return nil, err
	}

	activity := &entity.LotteryActivity{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         req.Title,
		Description:   req.Description,
		BannerImage:   req.BannerImage,
		LotteryTypeID: req.LotteryTypeID,
		StartTime:     req.StartTime,
		IsActive:      req.IsActive,
		DailyLimit:    req.DailyLimit,
		TotalLimit:    req.TotalLimit,
		PointsCost:    req.PointsCost,
		Prizes:        prizes,
	}

	if req.EndTime != nil {
		activity.EndTime = sql.NullTime{Time: *req.EndTime, Valid: true}
	}

	if err := d.lotteryRepo.CreateActivity(ctx, activity); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateLotteryActivityResponse{ID: activity.ID}, nil
}

func (d *lotteryDomain) UpdateActivity(
	ctx context.Context, req *model.UpdateLotteryActivityRequest,
) (*model.UpdateLotteryActivityResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return nil, errorx.New(errorx.BadRequest, "End time must be after start time")
	}

	if req.DailyLimit < 0 || req.TotalLimit < 0 || req.PointsCost < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limits and cost must not be negative")
	}

	prizes := toEntityPrizes(req.Prizes)
	if err := validatePrizeTable(prizes); err != nil {
		return nil, err
	}

	activity := &entity.LotteryActivity{
		Base:        entity.Base{ID: req.ID},
		Title:       req.Title,
		Description: req.Description,
		BannerImage: req.BannerImage,
		StartTime:   req.StartTime,
		IsActive:    req.IsActive,
		DailyLimit:  req.DailyLimit,
		TotalLimit:  req.TotalLimit,
		PointsCost:  req.PointsCost,
		Prizes:      prizes,
	}

	if req.EndTime != nil {
		activity.EndTime = sql.NullTime{Time: *req.EndTime, Valid: true}
	}

	if err := d.lotteryRepo.UpdateActivity(ctx, activity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot update activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateLotteryActivityResponse{}, nil
}

func (d *lotteryDomain) DeleteActivity(
	ctx context.Context, req *model.DeleteLotteryActivityRequest,
) (*model.DeleteLotteryActivityResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if err := d.lotteryRepo.DeleteActivity(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteLotteryActivityResponse{}, nil
}

func (d *lotteryDomain) GetActivities(
	ctx context.Context, req *model.GetLotteryActivitiesRequest,
) (*model.GetLotteryActivitiesResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	activities, err := d.lotteryRepo.GetActivities(ctx, repository.GetActivitiesFilter{
		ActiveOnly: req.ActiveOnly,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activities: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.LotteryActivity, 0, len(activities))
	for i := range activities {
		result = append(result, convertLotteryActivity(&activities[i]))
	}

	return &model.GetLotteryActivitiesResponse{Activities: result}, nil
}

func (d *lotteryDomain) GetActivity(
	ctx context.Context, req *model.GetLotteryActivityRequest,
) (*model.GetLotteryActivityResponse, error) {
	activity, err := d.lotteryRepo.GetCachedActivityByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLotteryActivityResponse{Activity: convertLotteryActivity(activity)}, nil
}

// Draw runs a full settlement and retries a bounded number of times when the
// settlement lost a counter race to a concurrent draw.
func (d *lotteryDomain) Draw(
	ctx context.Context, req *model.DrawLotteryRequest,
) (*model.DrawLotteryResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	if req.ActivityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty activity id")
	}

	cfg := xcontext.Configs(ctx).Lottery
	attempts := cfg.MaxDrawAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var record *entity.LotteryRecord
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && cfg.DrawRetryBackoff > 0 {
			time.Sleep(cfg.DrawRetryBackoff)
		}

		record, err = d.settle(ctx, userID, req.ActivityID)
		if !errors.Is(err, errDrawConflict) {
			break
		}
	}

	if errors.Is(err, errDrawConflict) {
		return nil, errorx.New(errorx.TooManyRequests, "The activity is busy, please try again")
	}

	if err != nil {
		return nil, err
	}

	return &model.DrawLotteryResponse{Record: convertLotteryRecord(record)}, nil
}

// settle is one atomic draw: eligibility, prize selection, counters, points,
// ledger, and the record all commit together or not at all.
func (d *lotteryDomain) settle(
	ctx context.Context, userID, activityID string,
) (*entity.LotteryRecord, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	activity, err := d.lotteryRepo.GetActivityByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	if err := d.checkEligibility(ctx, activity, user, now); err != nil {
		return nil, err
	}

	if err := validatePrizeTable(activity.Prizes); err != nil {
		return nil, err
	}

	roll := d.rollFn() * totalWeight(activity.Prizes)
	prize := pickPrize(activity.Prizes, roll)

	if activity.TotalLimit > 0 || activity.DailyLimit > 0 {
		day := dateutil.DayKey(now)
		err := d.lotteryRepo.CheckAndCountDraw(
			ctx, userID, activity.ID, day, activity.TotalLimit, activity.DailyLimit)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, d.diagnoseCounterFailure(ctx, userID, activity, day)
		} else if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count draw: %v", err)
			return nil, errorx.Unknown
		}
	}

	if activity.PointsCost > 0 {
		if err := d.debitPoints(ctx, user, activity); err != nil {
			return nil, err
		}
	}

	if prize.IsWin && prize.Type == entity.PrizeTypePoints && prize.Amount > 0 {
		if err := d.creditPrize(ctx, user, activity, prize); err != nil {
			return nil, err
		}
	}

	record := &entity.LotteryRecord{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		ActivityID:  activity.ID,
		PrizeName:   prize.Name,
		PrizeType:   prize.Type,
		PrizeAmount: prize.Amount,
		PrizeImage:  prize.Image,
		IsWin:       prize.IsWin,
		PointsCost:  activity.PointsCost,
		IPAddress:   clientIP(ctx),
		UserAgent:   userAgent(ctx),
	}

	if prize.IsWin {
		record.PrizeID = sql.NullString{String: prize.ID, Valid: true}
	}

	if err := d.lotteryRepo.CreateRecord(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create lottery record: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return record, nil
}

// checkEligibility applies the gate checks in a fixed order so a request that
// fails several of them always reports the same code.
func (d *lotteryDomain) checkEligibility(
	ctx context.Context, activity *entity.LotteryActivity, user *entity.User, now time.Time,
) error {
	if !activity.IsActive {
		return errorx.New(errorx.ActivityInactive, "The activity is inactive")
	}

	if now.Before(activity.StartTime) {
		return errorx.New(errorx.ActivityNotStarted, "The activity has not started yet")
	}

	if activity.EndTime.Valid && now.After(activity.EndTime.Time) {
		return errorx.New(errorx.ActivityEnded, "The activity has ended")
	}

	if activity.TotalLimit > 0 {
		count, err := d.lotteryRepo.CountRecordsByUserActivity(
			ctx, user.ID, activity.ID, time.Time{}, time.Time{})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count draws: %v", err)
			return errorx.Unknown
		}

		if count >= int64(activity.TotalLimit) {
			return errorx.New(errorx.TotalLimitReached, "You have used up your draws")
		}
	}

	if activity.DailyLimit > 0 {
		begin, end := dateutil.BoundsOfDay(now)
		count, err := d.lotteryRepo.CountRecordsByUserActivity(ctx, user.ID, activity.ID, begin, end)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count daily draws: %v", err)
			return errorx.Unknown
		}

		if count >= int64(activity.DailyLimit) {
			return errorx.New(errorx.DailyLimitReached, "You have used up your draws for today")
		}
	}

	if activity.PointsCost > 0 && user.Points < activity.PointsCost {
		return errorx.New(errorx.InsufficientPoints, "Not enough points")
	}

	return nil
}

// diagnoseCounterFailure decides which limit stopped the guarded counter
// update. If neither limit is actually exhausted the update lost a race and
// the draw may retry.
func (d *lotteryDomain) diagnoseCounterFailure(
	ctx context.Context, userID string, activity *entity.LotteryActivity, day string,
) error {
	participation, err := d.lotteryRepo.GetParticipation(ctx, userID, activity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errDrawConflict
		}

		xcontext.Logger(ctx).Errorf("Cannot get participation: %v", err)
		return errorx.Unknown
	}

	if activity.TotalLimit > 0 && participation.TotalCount >= activity.TotalLimit {
		return errorx.New(errorx.TotalLimitReached, "You have used up your draws")
	}

	if activity.DailyLimit > 0 && participation.DailyDay == day &&
		participation.DailyCount >= activity.DailyLimit {
		return errorx.New(errorx.DailyLimitReached, "You have used up your draws for today")
	}

	return errDrawConflict
}

func (d *lotteryDomain) debitPoints(
	ctx context.Context, user *entity.User, activity *entity.LotteryActivity,
) error {
	if err := d.userRepo.DecreasePoints(ctx, user.ID, activity.PointsCost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.InsufficientPoints, "Not enough points")
		}

		xcontext.Logger(ctx).Errorf("Cannot decrease points: %v", err)
		return errorx.Unknown
	}

	// Re-read after the guarded update so the ledger snapshot reflects what
	// actually happened, not what this request believed beforehand.
	fresh, err := d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload user: %v", err)
		return errorx.Unknown
	}

	*user = *fresh
	err = d.pointLogRepo.Append(ctx, &entity.PointLog{
		UserID:      user.ID,
		Points:      -activity.PointsCost,
		Balance:     user.Points,
		Reason:      entity.PointReasonLotteryCost,
		RelatedID:   activity.ID,
		RelatedType: "lottery_activity",
		Description: activity.Title,
		IPAddress:   clientIP(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append cost ledger entry: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *lotteryDomain) creditPrize(
	ctx context.Context, user *entity.User,
	activity *entity.LotteryActivity, prize entity.LotteryPrize,
) error {
	if err := d.userRepo.IncreasePoints(ctx, user.ID, prize.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase points: %v", err)
		return errorx.Unknown
	}

	fresh, err := d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload user: %v", err)
		return errorx.Unknown
	}

	*user = *fresh
	err = d.pointLogRepo.Append(ctx, &entity.PointLog{
		UserID:      user.ID,
		Points:      prize.Amount,
		Balance:     user.Points,
		Reason:      entity.PointReasonLotteryWin,
		RelatedID:   activity.ID,
		RelatedType: "lottery_activity",
		Description: prize.Name,
		IPAddress:   clientIP(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append win ledger entry: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *lotteryDomain) GetMyRecords(
	ctx context.Context, req *model.GetMyLotteryRecordsRequest,
) (*model.GetMyLotteryRecordsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	records, err := d.lotteryRepo.GetRecords(ctx, repository.GetRecordsFilter{
		UserID:     userID,
		ActivityID: req.ActivityID,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lottery records: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.LotteryRecord, 0, len(records))
	for i := range records {
		result = append(result, convertLotteryRecord(&records[i]))
	}

	return &model.GetMyLotteryRecordsResponse{Records: result}, nil
}

func (d *lotteryDomain) GetActivityRecords(
	ctx context.Context, req *model.GetLotteryActivityRecordsRequest,
) (*model.GetLotteryActivityRecordsResponse, error) {
	if req.ActivityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty activity id")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	records, err := d.lotteryRepo.GetRecords(ctx, repository.GetRecordsFilter{
		ActivityID: req.ActivityID,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lottery records: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.LotteryRecord, 0, len(records))
	for i := range records {
		result = append(result, convertLotteryRecord(&records[i]))
	}

	return &model.GetLotteryActivityRecordsResponse{Records: result}, nil
}

func toEntityPrizes(prizes []model.LotteryPrize) []entity.LotteryPrize {
	result := make([]entity.LotteryPrize, 0, len(prizes))
	for _, prize := range prizes {
		id := prize.ID
		if id == "" {
			id = uuid.NewString()
		}

		result = append(result, entity.LotteryPrize{
			ID:     id,
			Name:   prize.Name,
			Type:   entity.PrizeType(prize.Type),
			Amount: prize.Amount,
			Image:  prize.Image,
			Weight: prize.Weight,
			IsWin:  prize.IsWin,
		})
	}

	return result
}

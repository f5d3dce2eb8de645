package domain

import (
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
)

func convertUser(user *entity.User) model.User {
	return model.User{
		ID:          user.ID,
		Name:        user.Name,
		Role:        string(user.Role),
		Avatar:      user.Avatar,
		Bio:         user.Bio,
		Points:      user.Points,
		TotalPoints: user.TotalPoints,
		UsedPoints:  user.UsedPoints,
	}
}

func convertLotteryType(lotteryType *entity.LotteryType) model.LotteryType {
	return model.LotteryType{
		ID:          lotteryType.ID,
		Name:        lotteryType.Name,
		Code:        lotteryType.Code,
		Description: lotteryType.Description,
		Icon:        lotteryType.Icon,
	}
}

func convertLotteryPrize(prize entity.LotteryPrize) model.LotteryPrize {
	return model.LotteryPrize{
		ID:     prize.ID,
		Name:   prize.Name,
		Type:   string(prize.Type),
		Amount: prize.Amount,
		Image:  prize.Image,
		Weight: prize.Weight,
		IsWin:  prize.IsWin,
	}
}

func convertLotteryActivity(activity *entity.LotteryActivity) model.LotteryActivity {
	prizes := make([]model.LotteryPrize, 0, len(activity.Prizes))
	for _, prize := range activity.Prizes {
		prizes = append(prizes, convertLotteryPrize(prize))
	}

	result := model.LotteryActivity{
		ID:          activity.ID,
		Title:       activity.Title,
		Description: activity.Description,
		BannerImage: activity.BannerImage,
		LotteryType: convertLotteryType(&activity.LotteryType),
		StartTime:   activity.StartTime,
		IsActive:    activity.IsActive,
		DailyLimit:  activity.DailyLimit,
		TotalLimit:  activity.TotalLimit,
		PointsCost:  activity.PointsCost,
		Prizes:      prizes,
	}

	if activity.EndTime.Valid {
		endTime := activity.EndTime.Time
		result.EndTime = &endTime
	}

	return result
}

func convertLotteryRecord(record *entity.LotteryRecord) model.LotteryRecord {
	result := model.LotteryRecord{
		ID:          record.ID,
		UserID:      record.UserID,
		ActivityID:  record.ActivityID,
		PrizeName:   record.PrizeName,
		PrizeType:   string(record.PrizeType),
		PrizeAmount: record.PrizeAmount,
		PrizeImage:  record.PrizeImage,
		IsWin:       record.IsWin,
		PointsCost:  record.PointsCost,
		IsExchanged: record.IsExchanged,
		CreatedAt:   record.CreatedAt,
	}

	if record.PrizeID.Valid {
		result.PrizeID = record.PrizeID.String
	}

	return result
}

func convertPointLog(log *entity.PointLog) model.PointLog {
	return model.PointLog{
		ID:          log.ID,
		UserID:      log.UserID,
		Points:      log.Points,
		Balance:     log.Balance,
		Reason:      string(log.Reason),
		RelatedID:   log.RelatedID,
		RelatedType: log.RelatedType,
		Description: log.Description,
		CreatedAt:   log.CreatedAt,
	}
}

func convertBanner(banner *entity.Banner) model.Banner {
	result := model.Banner{
		ID:         banner.ID,
		Title:      banner.Title,
		Image:      banner.Image,
		LinkURL:    banner.LinkURL,
		Position:   banner.Position,
		SortOrder:  banner.SortOrder,
		IsActive:   banner.IsActive,
		ViewCount:  banner.ViewCount,
		ClickCount: banner.ClickCount,
	}

	if banner.StartTime.Valid {
		startTime := banner.StartTime.Time
		result.StartTime = &startTime
	}

	if banner.EndTime.Valid {
		endTime := banner.EndTime.Time
		result.EndTime = &endTime
	}

	return result
}

func convertApplication(app *entity.Application) model.Application {
	return model.Application{
		ID:          app.ID,
		Name:        app.Name,
		Description: app.Description,
		Icon:        app.Icon,
		LinkURL:     app.LinkURL,
		Category:    app.Category,
		SortOrder:   app.SortOrder,
		IsActive:    app.IsActive,
		ViewCount:   app.ViewCount,
		ClickCount:  app.ClickCount,
	}
}

func convertProduct(product *entity.Product) model.Product {
	return model.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Image:       product.Image,
		PointsPrice: product.PointsPrice,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
	}
}

func convertExchangeOrder(order *entity.ExchangeOrder) model.ExchangeOrder {
	return model.ExchangeOrder{
		ID:          order.ID,
		UserID:      order.UserID,
		ProductID:   order.ProductID,
		ProductName: order.Product.Name,
		PointsPrice: order.PointsPrice,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}
}

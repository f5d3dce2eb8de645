package domain

import (
	"math"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/errorx"
)

func totalWeight(prizes []entity.LotteryPrize) float64 {
	total := 0.0
	for _, prize := range prizes {
		total += prize.Weight
	}

	return total
}

// validatePrizeTable rejects tables no draw could settle against: an empty
// table, a negative or non-finite weight, an unknown prize type, a winning
// points prize without a positive amount, or a zero total weight. A single
// prize may carry weight zero to keep it listed but never drawn.
func validatePrizeTable(prizes []entity.LotteryPrize) error {
	if len(prizes) == 0 {
		return errorx.New(errorx.InvalidPrizeTable, "Prize table is empty")
	}

	for _, prize := range prizes {
		if prize.ID == "" {
			return errorx.New(errorx.InvalidPrizeTable, "Prize has no id")
		}

		if prize.Weight < 0 || math.IsNaN(prize.Weight) || math.IsInf(prize.Weight, 0) {
			return errorx.New(errorx.InvalidPrizeTable,
				"Prize %s has an invalid weight", prize.ID)
		}

		switch prize.Type {
		case entity.PrizeTypePoints:
			if prize.IsWin && prize.Amount <= 0 {
				return errorx.New(errorx.InvalidPrizeTable,
					"Points prize %s needs a positive amount", prize.ID)
			}
		case entity.PrizeTypePhysical, entity.PrizeTypeCoupon, entity.PrizeTypeNone:
		default:
			return errorx.New(errorx.InvalidPrizeTable,
				"Prize %s has an unknown type %s", prize.ID, prize.Type)
		}
	}

	if !(totalWeight(prizes) > 0) {
		return errorx.New(errorx.InvalidPrizeTable, "Total weight must be positive")
	}

	return nil
}

// pickPrize maps a roll in [0, totalWeight) onto the prize table by walking
// the cumulative weights. Rolls that escape the last boundary through float
// rounding land on the last prize.
func pickPrize(prizes []entity.LotteryPrize, roll float64) entity.LotteryPrize {
	cumulative := 0.0
	for _, prize := range prizes {
		cumulative += prize.Weight
		if roll < cumulative {
			return prize
		}
	}

	return prizes[len(prizes)-1]
}

package repository

import "fmt"

func redisKeyLotteryActivity(id string) string {
	return fmt.Sprintf("lottery_activity:%s", id)
}

package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Lottery   LotteryConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host         string
	Port         string
	Cert         string
	Key          string
	MaxLimit     int
	DefaultLimit int
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type LotteryConfigs struct {
	// MaxDrawAttempts bounds retries of a draw settlement that aborted with
	// a transient storage conflict.
	MaxDrawAttempts  int
	DrawRetryBackoff time.Duration

	// ActivityCacheTTL bounds how long a cached activity config may lag the
	// database. Draw settlements never read through the cache.
	ActivityCacheTTL time.Duration
}

package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		Timezone    string `default:"Asia/Jakarta" env:"APP_TIMEZONE"`
		CompanyName string `default:"Employee Management" env:"APP_COMPANY_NAME"`
		BodyLimit   int    `default:"20971520" env:"APP_BODY_LIMIT"`
		DocsPath    string `default:"./docs/swagger.json" env:"APP_DOCS_PATH"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"employee-management" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string  `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec        int64   `default:"3600" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int64   `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
		LoginRatePerSec       float64 `default:"1" env:"AUTH_LOGIN_RATE_PER_SEC"`
		LoginRateBurst        int     `default:"5" env:"AUTH_LOGIN_RATE_BURST"`
		CompanyEmailDomain    string  `default:"" env:"AUTH_COMPANY_EMAIL_DOMAIN"`
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"employee-management" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Attendance struct {
		LateCutoff         string  `default:"09:00" env:"ATTENDANCE_LATE_CUTOFF"`
		FaceRequired       *bool   `default:"false" env:"ATTENDANCE_FACE_REQUIRED"`
		FaceMatchThreshold float64 `default:"0.6" env:"ATTENDANCE_FACE_MATCH_THRESHOLD"`
	}
	Leave struct {
		MinTenureMonths int `default:"3" env:"LEAVE_MIN_TENURE_MONTHS"`
		AnnualQuotaDays int `default:"12" env:"LEAVE_ANNUAL_QUOTA_DAYS"`
	}
	Admin struct {
		Email     string `default:"" env:"ADMIN_EMAIL"`
		Password  string `default:"" env:"ADMIN_PASSWORD"`
		FirstName string `default:"HR" env:"ADMIN_FIRST_NAME"`
		LastName  string `default:"Admin" env:"ADMIN_LAST_NAME"`
	}
	Notify struct {
		ErrWebhook string `default:"" env:"NOTIFY_ERR_WEBHOOK"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

// Location часовой пояс компании, в нем считаются календарные даты отметок
func Location() *time.Location {
	if Conf == nil || Conf.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(Conf.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

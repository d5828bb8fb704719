package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBAutoMigrate  bool

	CORSAllowedOrigins []string

	AuthEnabled bool
	JWTSecret   string
	JWTTTL      time.Duration

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

func LoadEnv() Env {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// .env is optional; plain environment variables still apply.
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "travel_app")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")

	appAddr := strings.TrimSpace(v.GetString("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(v.GetString("GIN_MODE")),
		LogLevel:           strings.TrimSpace(v.GetString("LOG_LEVEL")),
		DBHost:             strings.TrimSpace(v.GetString("DB_HOST")),
		DBPort:             v.GetInt("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             strings.TrimSpace(v.GetString("DB_NAME")),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBAutoMigrate:      v.GetBool("DB_AUTO_MIGRATE"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AuthEnabled:        v.GetBool("AUTH_ENABLED"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),

		BootstrapAdminEmail:    strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_EMAIL")),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

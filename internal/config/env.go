package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	// StoreDriver selects the row-store backend: memory | mysql | supabase.
	StoreDriver string
	MySQLDSN    string
	SupabaseURL string
	SupabaseKey string

	// RemoteAPIBase is the real backend the dispatcher tries first; empty
	// means local-only.
	RemoteAPIBase string

	JWTSecret string
	// AuthMode: "required" forces a bearer identity on auth-gated bookings,
	// "guest" lets anonymous callers through everything but the bike path.
	AuthMode string
}

func LoadEnv() Env {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("MYSQL_DSN", "root:@tcp(127.0.0.1:3306)/travel_app?parseTime=true&charset=utf8mb4")
	v.SetDefault("JWT_SECRET", "super-secret-key-change-me")
	v.SetDefault("AUTH_MODE", "guest")

	return Env{
		AppAddr:       strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:       strings.TrimSpace(v.GetString("GIN_MODE")),
		StoreDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		MySQLDSN:      strings.TrimSpace(v.GetString("MYSQL_DSN")),
		SupabaseURL:   strings.TrimSpace(v.GetString("SUPABASE_URL")),
		SupabaseKey:   strings.TrimSpace(v.GetString("SUPABASE_SERVICE_ROLE_KEY")),
		RemoteAPIBase: strings.TrimSpace(v.GetString("REMOTE_API_BASE")),
		JWTSecret:     strings.TrimSpace(v.GetString("JWT_SECRET")),
		AuthMode:      strings.ToLower(strings.TrimSpace(v.GetString("AUTH_MODE"))),
	}
}

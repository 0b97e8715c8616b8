package config

import "os"

type Config struct {
	HTTPAddr    string
	MySQLDSN    string // empty selects the in-memory backend
	RedisAddr   string // empty disables the stock cache
	ServiceName string
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:    os.Getenv("MYSQL_DSN"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		ServiceName: getenv("SERVICE_NAME", "scm-core"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package config

import (
	"os"

	"github.com/sitehatch/market-backend/pkg/env"
)

type ServerConfig struct {
	Port         string
	AllowOrigins string
	AdminToken   string
	UploadPrefix string
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         env.GetEnv("PORT", "8080"),
		AllowOrigins: env.GetEnv("ALLOW_ORIGINS", "http://localhost:3000"),
		AdminToken:   os.Getenv("ADMIN_TOKEN"),
		UploadPrefix: env.GetEnv("UPLOAD_PREFIX", "uploads/"),
	}
}

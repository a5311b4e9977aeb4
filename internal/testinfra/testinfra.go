package testinfra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var Pool *pgxpool.Pool

func init() {
	Pool = SetupDB()
}

func SetupDB() *pgxpool.Pool {

	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:17.2-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	if err != nil {
		log.Panicf("start postgres: %v", err)
	}

	pgHostPort, err := pgC.Endpoint(ctx, "")
	if err != nil {
		log.Panicf("postgres endpoint: %v", err)
	}
	pgDSN := fmt.Sprintf("postgres://postgres:password@%s/testdb?sslmode=disable", pgHostPort)

	pool, err := pgxpool.New(ctx, pgDSN)
	if err != nil {
		log.Panicf("pgxpool connect: %v", err)
	}

	ok := false
	for i := 0; i < 20; i++ {
		slog.Info("ping db", "try", i)
		ctxPing, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		err = pool.Ping(ctxPing)
		cancel()
		if err == nil {
			ok = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ok {
		log.Panic("db did not respond after 20 attempts")
	}

	_, err = pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS market;
		CREATE TABLE IF NOT EXISTS market.templates (
		  id BIGSERIAL PRIMARY KEY,
		  name TEXT UNIQUE NOT NULL,
		  category TEXT NOT NULL,
		  price_usd NUMERIC(12,2) NOT NULL DEFAULT 0,
		  price_eur NUMERIC(12,2) NOT NULL DEFAULT 0,
		  price_gbp NUMERIC(12,2) NOT NULL DEFAULT 0,
		  price_ksh NUMERIC(12,2) NOT NULL DEFAULT 0,
		  rate_per_month NUMERIC(12,2) NOT NULL DEFAULT 0,
		  rate_per_page NUMERIC(12,2) NOT NULL DEFAULT 0,
		  preview_link TEXT NOT NULL DEFAULT '',
		  image_url TEXT NOT NULL DEFAULT '',
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS market.custom_requests (
		  id UUID PRIMARY KEY,
		  name TEXT NOT NULL,
		  email TEXT NOT NULL,
		  phone TEXT NOT NULL,
		  category TEXT NOT NULL,
		  template_name TEXT NOT NULL,
		  country TEXT NOT NULL,
		  currency TEXT NOT NULL,
		  price NUMERIC(12,2) NOT NULL,
		  duration_months INT NOT NULL,
		  page_count INT NOT NULL,
		  extra_pages TEXT NOT NULL DEFAULT '',
		  domain_choice TEXT NOT NULL DEFAULT '',
		  domain_name TEXT NOT NULL DEFAULT '',
		  theme_choice TEXT NOT NULL DEFAULT '',
		  custom_color TEXT NOT NULL DEFAULT '',
		  social_handles JSONB NOT NULL DEFAULT '[]',
		  message TEXT NOT NULL DEFAULT '',
		  extension JSONB NOT NULL DEFAULT '{}',
		  file_urls JSONB NOT NULL DEFAULT '[]',
		  schema_version INT NOT NULL DEFAULT 1,
		  created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS market.messages (
		  id BIGSERIAL PRIMARY KEY,
		  session_id TEXT NOT NULL,
		  sender TEXT NOT NULL,
		  content TEXT NOT NULL,
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS market.knowledge (
		  id BIGSERIAL PRIMARY KEY,
		  topic TEXT NOT NULL,
		  content TEXT NOT NULL,
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS market.outbox (
		  id BIGSERIAL PRIMARY KEY,
		  event TEXT NOT NULL,
		  status INT NOT NULL DEFAULT 0,
		  payload JSONB NOT NULL,
		  created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS market.mails (
		  id BIGSERIAL PRIMARY KEY,
		  type TEXT NOT NULL,
		  recipients TEXT NOT NULL,
		  subject TEXT NOT NULL,
		  content TEXT NOT NULL,
		  sent_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS market.mail_templates (
		  type TEXT PRIMARY KEY,
		  content TEXT NOT NULL
		);
	`)
	if err != nil {
		log.Panicf("create schema: %v", err)
	}

	return pool
}

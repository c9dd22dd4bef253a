package main

import (
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"trakr-data/internal/config"
	"trakr-data/internal/database"
)

// 建表语句，全部幂等，可重复执行
var statements = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id SERIAL PRIMARY KEY,
		organization_name TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		product_type TEXT,
		create_time TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		sn SERIAL PRIMARY KEY,
		organization_id INTEGER NOT NULL REFERENCES organizations(id),
		account TEXT NOT NULL,
		permission TEXT NOT NULL,
		login_free_address TEXT,
		UNIQUE (organization_id, account)
	)`,
	`CREATE TABLE IF NOT EXISTS tracking_objects (
		sn SERIAL PRIMARY KEY,
		organization_id INTEGER NOT NULL REFERENCES organizations(id),
		name TEXT NOT NULL,
		role TEXT,
		mac TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		sn SERIAL PRIMARY KEY,
		organization_id INTEGER NOT NULL REFERENCES organizations(id),
		imei TEXT NOT NULL UNIQUE,
		signal INTEGER,
		power INTEGER,
		charge_status TEXT,
		tracking_update_time TIMESTAMPTZ,
		data_update_time TIMESTAMPTZ,
		bluetooth_mark TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS alarms (
		sn SERIAL PRIMARY KEY,
		organization_id INTEGER NOT NULL REFERENCES organizations(id),
		imei TEXT NOT NULL,
		warn_type TEXT NOT NULL,
		time TIMESTAMPTZ NOT NULL,
		check_the_time TIMESTAMPTZ,
		check_time TEXT,
		is_handled BOOLEAN NOT NULL DEFAULT FALSE,
		handled_by TEXT,
		handled_at TIMESTAMPTZ,
		handle_reason TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS route_list (
		sn SERIAL PRIMARY KEY,
		terminal_id TEXT NOT NULL,
		tracking_time TIMESTAMPTZ NOT NULL,
		gps_x DOUBLE PRECISION,
		gps_y DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		sn SERIAL PRIMARY KEY,
		organization_id INTEGER NOT NULL REFERENCES organizations(id),
		name TEXT NOT NULL,
		color TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS virtual_fence (
		sn SERIAL PRIMARY KEY,
		organization_id INTEGER NOT NULL REFERENCES organizations(id),
		imei_or_object TEXT NOT NULL,
		fence_name TEXT NOT NULL,
		warn_type TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alarms_org_time ON alarms (organization_id, time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_alarms_imei ON alarms (imei)`,
	`CREATE INDEX IF NOT EXISTS idx_route_list_terminal_time ON route_list (terminal_id, tracking_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_tags_organization ON tags (organization_id)`,
}

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("failed to execute statement %d: %v", i+1, err)
		}
	}

	fmt.Printf("database %s initialized (%d statements)\n", cfg.Database.Database, len(statements))
}

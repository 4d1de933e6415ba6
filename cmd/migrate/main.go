package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()
	dir := migrationsDir()

	if *command == "create" {
		if *name == "" {
			logrus.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			logrus.Fatalf("create migration: %v", err)
		}
		logrus.Infof("migration created: %s", *name)
		return
	}

	dsn, err := databaseDSN()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logrus.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		logrus.Fatalf("set dialect: %v", err)
	}

	switch *command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			logrus.Fatalf("apply migrations: %v", err)
		}
		logrus.Info("migrations applied successfully")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			logrus.Fatalf("roll back migration: %v", err)
		}
		logrus.Info("migration rolled back successfully")
	case "status":
		if err := goose.Status(db, dir); err != nil {
			logrus.Fatalf("check migration status: %v", err)
		}
	default:
		logrus.Fatalf("unknown command: %s. Use: up, down, status, create", *command)
	}
}

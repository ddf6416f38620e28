// Command addgroup creates a post group. Groups have no web form.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/config"
	groupapp "yatube/internal/core/group/service"

	"go.uber.org/zap"
)

func main() {
	slug := flag.String("slug", "", "unique group slug")
	title := flag.String("title", "", "group title")
	description := flag.String("description", "", "group description")
	flag.Parse()

	if err := run(*slug, *title, *description); err != nil {
		fmt.Fprintln(os.Stderr, "addgroup:", err)
		os.Exit(1)
	}
}

func run(slug, title, description string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.InitLogger(cfg.AppEnv); err != nil {
		return err
	}
	defer func() { _ = config.Logger.Sync() }()

	db, err := config.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer func() { _ = config.CloseDB(db) }()
	if err := config.Migrate(db); err != nil {
		return err
	}

	svc := groupapp.NewGroupService(dbadapter.NewGroupRepositoryDatabase(db))
	g, err := svc.CreateGroup(context.Background(), slug, title, description)
	if err != nil {
		return err
	}
	config.Logger.Info("✅ Group ready", zap.String("id", g.ID), zap.String("slug", g.Slug))
	return nil
}

// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"
	"yatube/internal/config"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"gorm.io/gorm"
)

// NewDB opens a migrated sqlite database that lives in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB("sqlite", filepath.Join(t.TempDir(), "yatube.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{Username: username, Password: "x"}
	if err := db.WithContext(context.Background()).Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateGroup(t testing.TB, db *gorm.DB, slug string) *group.Group {
	t.Helper()
	g := &group.Group{Slug: slug, Title: "Group " + slug, Description: "about " + slug}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return g
}

// CreatePost stores a post with an explicit creation time so ordering is deterministic.
func CreatePost(t testing.TB, db *gorm.DB, author *user.User, g *group.Group, text string, createdAt time.Time) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, AuthorID: author.ID, CreatedAt: createdAt}
	if g != nil {
		p.GroupID = &g.ID
	}
	if err := db.Omit("Author", "Group").Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

// PNG returns a small valid png image.
func PNG(t testing.TB) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// Package sqlitetest opens migrated in-memory SQLite databases for store tests.
package sqlitetest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Guyuepp/conduit-feed/domain"
	mysqlrepo "github.com/Guyuepp/conduit-feed/internal/repository/mysql"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

// Open returns a fresh migrated database. A single connection keeps the
// in-memory database shared and serializes concurrent writers.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysqlrepo.Migrate(db))
	return db
}

// SeedUser inserts a user named username with random details.
func SeedUser(t testing.TB, db *gorm.DB, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := &model.User{
		Email:     faker.Email(),
		Username:  username,
		Bio:       faker.Sentence(),
		Password:  faker.Password(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(u).Error)
	return u.ToDomain()
}

// SeedArticle inserts an article by authorID created at createdAt.
func SeedArticle(t testing.TB, db *gorm.DB, authorID int64, createdAt time.Time, tags ...string) domain.Article {
	t.Helper()

	if tags == nil {
		tags = []string{}
	}
	a := &model.Article{
		Slug:        faker.UUIDDigit(),
		Title:       faker.Sentence(),
		Description: faker.Sentence(),
		Body:        faker.Paragraph(),
		TagList:     tags,
		AuthorID:    authorID,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}
	require.NoError(t, db.Create(a).Error)
	return a.ToDomain()
}

// SetArticleFavorites overwrites the stored counter, used to fake drift or ordering.
func SetArticleFavorites(t testing.TB, db *gorm.DB, id int64, n int64) {
	t.Helper()
	require.NoError(t, db.Model(&model.Article{}).Where("id = ?", id).UpdateColumn("favorites_count", n).Error)
}

// ArticleFavorites reads the stored counter of article id.
func ArticleFavorites(t testing.TB, db *gorm.DB, id int64) int64 {
	t.Helper()
	var a model.Article
	require.NoError(t, db.First(&a, id).Error)
	return a.FavoritesCount
}

// UserCounters reads the stored follow counters of user id.
func UserCounters(t testing.TB, db *gorm.DB, id int64) (followers, followee int64) {
	t.Helper()
	var u model.User
	require.NoError(t, db.First(&u, id).Error)
	return u.Followers, u.Followee
}

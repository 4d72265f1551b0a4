package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain"
	mysqlrepo "github.com/Guyuepp/conduit-feed/internal/repository/mysql"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/sqlitetest"
)

func TestCommentLifecycle(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := mysqlrepo.NewCommentRepository(db)
	ctx := context.Background()

	author := sqlitetest.SeedUser(t, db, "author")
	article := sqlitetest.SeedArticle(t, db, author.ID, base)

	second := &domain.Comment{ArticleID: article.ID, AuthorID: author.ID, Body: "second", CreatedAt: base.Add(time.Minute)}
	first := &domain.Comment{ArticleID: article.ID, AuthorID: author.ID, Body: "first", CreatedAt: base}
	require.NoError(t, repo.Store(ctx, second))
	require.NoError(t, repo.Store(ctx, first))

	list, err := repo.FetchByArticle(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Body)
	assert.Equal(t, "second", list[1].Body)

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.AuthorID)

	require.NoError(t, repo.Delete(ctx, second.ID))
	assert.ErrorIs(t, repo.Delete(ctx, second.ID), domain.ErrNotFound)
	_, err = repo.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package mysql_test

import (
	"context"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/Guyuepp/conduit-feed/domain"
	mysqlrepo "github.com/Guyuepp/conduit-feed/internal/repository/mysql"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/sqlitetest"
)

func TestRelationInsertDeleteIdempotent(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := mysqlrepo.NewRelationRepository(db)
	ctx := context.Background()
	rel := domain.Relation{Kind: domain.Favorite, SourceID: 1, TargetID: 10}

	added, err := repo.Insert(ctx, rel)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Insert(ctx, rel)
	require.NoError(t, err)
	assert.False(t, added)

	// 不同种类互不影响
	added, err = repo.Insert(ctx, domain.Relation{Kind: domain.Bookmark, SourceID: 1, TargetID: 10})
	require.NoError(t, err)
	assert.True(t, added)

	ok, err := repo.Contains(ctx, rel)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := repo.Delete(ctx, rel)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, rel)
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err = repo.Contains(ctx, rel)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRelationQueries(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := mysqlrepo.NewRelationRepository(db)
	ctx := context.Background()

	for _, r := range []domain.Relation{
		{Kind: domain.Favorite, SourceID: 1, TargetID: 30},
		{Kind: domain.Favorite, SourceID: 1, TargetID: 10},
		{Kind: domain.Favorite, SourceID: 2, TargetID: 10},
		{Kind: domain.Bookmark, SourceID: 1, TargetID: 20},
	} {
		_, err := repo.Insert(ctx, r)
		require.NoError(t, err)
	}

	targets, err := repo.Targets(ctx, domain.Favorite, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 30}, targets)

	targets, err = repo.Targets(ctx, domain.Follow, 1)
	require.NoError(t, err)
	assert.NotNil(t, targets)
	assert.Empty(t, targets)

	n, err := repo.Count(ctx, domain.Favorite, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	hits, err := repo.ContainsBatch(ctx, domain.Favorite, 1, []int64{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{10: true, 20: false, 30: true}, hits)

	hits, err = repo.ContainsBatch(ctx, domain.Favorite, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, repo.DeleteByTarget(ctx, domain.Favorite, 10))
	n, err = repo.Count(ctx, domain.Favorite, 10)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// On MySQL a racing insert of an existing pair reaches the server and comes
// back with zero affected rows, or as error 1062 from a unique index.
func TestRelationInsertDuplicateOnMySQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlrepo.NewRelationRepository(db)
	ctx := context.Background()
	rel := domain.Relation{Kind: domain.Follow, SourceID: 2, TargetID: 3}
	insert := "INSERT INTO `relationships` .* ON DUPLICATE KEY UPDATE"

	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
	added, err := repo.Insert(ctx, rel)
	require.NoError(t, err)
	assert.True(t, added)

	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))
	added, err = repo.Insert(ctx, rel)
	require.NoError(t, err)
	assert.False(t, added)

	mock.ExpectExec(insert).WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	added, err = repo.Insert(ctx, rel)
	require.NoError(t, err)
	assert.False(t, added)

	mock.ExpectExec(insert).WillReturnError(&gomysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	_, err = repo.Insert(ctx, rel)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

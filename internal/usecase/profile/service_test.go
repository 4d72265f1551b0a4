package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/domain/mocks"
	"github.com/Guyuepp/conduit-feed/internal/usecase/profile"
	"github.com/Guyuepp/conduit-feed/internal/usecase/viewer"
)

func newService() (*profile.Service, *mocks.UserRepository, *mocks.CounterUsecase, *mocks.RelationRepository) {
	users := new(mocks.UserRepository)
	counter := new(mocks.CounterUsecase)
	relations := new(mocks.RelationRepository)
	return profile.NewService(users, counter, viewer.NewMembership(relations, nil)), users, counter, relations
}

func TestGetProfileFollowingFlag(t *testing.T) {
	svc, users, _, relations := newService()
	bob := domain.User{ID: 2, Username: "bob", Followers: 3}
	users.On("GetByUsername", mock.Anything, "bob").Return(bob, nil)
	relations.On("ContainsBatch", mock.Anything, domain.Follow, int64(1), []int64{2}).Return(map[int64]bool{2: true}, nil).Once()

	p, err := svc.GetProfile(context.Background(), "bob", 1)
	require.NoError(t, err)
	assert.True(t, p.Following)
	assert.Equal(t, int64(3), p.Followers)

	p, err = svc.GetProfile(context.Background(), "bob", 0)
	require.NoError(t, err)
	assert.False(t, p.Following)
	relations.AssertExpectations(t)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, users, _, _ := newService()
	users.On("GetByUsername", mock.Anything, "ghost").Return(domain.User{}, domain.ErrNotFound)

	_, err := svc.GetProfile(context.Background(), "ghost", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchProfilesLowercases(t *testing.T) {
	svc, users, _, _ := newService()
	users.On("Search", mock.Anything, "gopher", profile.SearchLimit).
		Return([]domain.User{{ID: 1, Username: "Gopher"}, {ID: 2, Username: "writer"}}, nil).Once()

	res, err := svc.SearchProfiles(context.Background(), "  GoPher ", 0)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Gopher", res[0].Username)
	users.AssertExpectations(t)
}

func TestToggleFollow(t *testing.T) {
	svc, users, counter, relations := newService()
	bob := domain.User{ID: 2, Username: "bob"}
	users.On("GetByUsername", mock.Anything, "bob").Return(bob, nil)
	counter.On("Toggle", mock.Anything, domain.Relation{Kind: domain.Follow, SourceID: 1, TargetID: 2}, domain.Add).
		Return(true, nil).Once()
	relations.On("ContainsBatch", mock.Anything, domain.Follow, int64(1), []int64{2}).Return(map[int64]bool{2: true}, nil).Once()

	p, err := svc.ToggleFollow(context.Background(), 1, "bob", true)
	require.NoError(t, err)
	assert.True(t, p.Following)
	counter.AssertExpectations(t)
}

func TestToggleFollowSelfIsRejected(t *testing.T) {
	svc, users, counter, _ := newService()
	users.On("GetByUsername", mock.Anything, "alice").Return(domain.User{ID: 1, Username: "alice"}, nil)
	counter.On("Toggle", mock.Anything, domain.Relation{Kind: domain.Follow, SourceID: 1, TargetID: 1}, domain.Add).
		Return(false, domain.ErrInvalidInput).Once()

	_, err := svc.ToggleFollow(context.Background(), 1, "alice", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ToggleFollow(context.Background(), 0, "alice", true)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

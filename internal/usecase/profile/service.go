package profile

import (
	"context"
	"strings"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/usecase/viewer"
)

// SearchLimit caps SearchProfiles results.
const SearchLimit = 20

type Service struct {
	userRepo domain.UserRepository
	counter  domain.CounterUsecase
	members  *viewer.Membership
}

var _ domain.ProfileUsecase = (*Service)(nil)

func NewService(u domain.UserRepository, c domain.CounterUsecase, m *viewer.Membership) *Service {
	return &Service{
		userRepo: u,
		counter:  c,
		members:  m,
	}
}

func (s *Service) withFollowing(ctx context.Context, users []domain.User, viewerID int64) ([]domain.Profile, error) {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	following, err := s.members.Check(ctx, domain.Follow, viewerID, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Profile, len(users))
	for i, u := range users {
		res[i] = u.ToProfile()
		res[i].Following = following[u.ID]
	}
	return res, nil
}

func (s *Service) GetProfile(ctx context.Context, username string, viewerID int64) (domain.Profile, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}
	res, err := s.withFollowing(ctx, []domain.User{u}, viewerID)
	if err != nil {
		return domain.Profile{}, err
	}
	return res[0], nil
}

// SearchProfiles 用户名或简介包含 text 的用户, 不区分大小写
func (s *Service) SearchProfiles(ctx context.Context, text string, viewerID int64) ([]domain.Profile, error) {
	users, err := s.userRepo.Search(ctx, strings.ToLower(strings.TrimSpace(text)), SearchLimit)
	if err != nil {
		return nil, err
	}
	return s.withFollowing(ctx, users, viewerID)
}

func (s *Service) ToggleFollow(ctx context.Context, viewerID int64, username string, add bool) (domain.Profile, error) {
	if viewerID <= 0 {
		return domain.Profile{}, domain.ErrUnauthorized
	}
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}

	rel := domain.Relation{Kind: domain.Follow, SourceID: viewerID, TargetID: target.ID}
	if _, err := s.counter.Toggle(ctx, rel, domain.DirectionOf(add)); err != nil {
		return domain.Profile{}, err
	}

	// 重新读取最新的计数
	return s.GetProfile(ctx, username, viewerID)
}

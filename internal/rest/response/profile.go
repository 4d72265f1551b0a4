package response

import "github.com/Guyuepp/conduit-feed/domain"

// DateTimeFormat is used for every timestamp in responses.
const DateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Followers int64  `json:"followersCount"`
	Followee  int64  `json:"followingCount"`
	Following bool   `json:"following"`
}

func NewProfileFromDomain(p *domain.Profile) Profile {
	return Profile{
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     p.Image,
		Followers: p.Followers,
		Followee:  p.Followee,
		Following: p.Following,
	}
}

type SingleProfile struct {
	Profile Profile `json:"profile"`
}

type MultipleProfiles struct {
	Profiles []Profile `json:"profiles"`
}

func NewProfiles(ps []domain.Profile) MultipleProfiles {
	res := make([]Profile, len(ps))
	for i := range ps {
		res[i] = NewProfileFromDomain(&ps[i])
	}
	return MultipleProfiles{Profiles: res}
}

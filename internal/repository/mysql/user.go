package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user model.User
	if err := conn(ctx, m.DB).First(&user, "id = ?", id).Error; err != nil {
		return domain.User{}, notFound(err)
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var user model.User
	if err := conn(ctx, m.DB).First(&user, "username = ?", username).Error; err != nil {
		return domain.User{}, notFound(err)
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetByIDs(ctx context.Context, uids []int64) ([]domain.User, error) {
	if len(uids) == 0 {
		return []domain.User{}, nil
	}
	var users []model.User
	err := conn(ctx, m.DB).Model(&model.User{}).Where("id IN ?", uids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, nil
}

func (m *userRepository) Insert(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	result := conn(ctx, m.DB).Create(userModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domain.ErrConflict
		}
		return result.Error
	}

	u.ID = userModel.ID
	u.CreatedAt = userModel.CreatedAt
	u.UpdatedAt = userModel.UpdatedAt
	return nil
}

func (m *userRepository) Search(ctx context.Context, text string, limit int) ([]domain.User, error) {
	q := conn(ctx, m.DB).Model(&model.User{})
	if text != "" {
		p := containsPattern(strings.ToLower(text))
		q = q.Where("(LOWER(username) LIKE ? ESCAPE '!' OR LOWER(bio) LIKE ? ESCAPE '!')", p, p)
	}

	var users []model.User
	if err := q.Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, nil
}

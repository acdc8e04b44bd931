package user

import (
	"context"
	"errors"
	"strings"

	"friendgraph/internal/common"
	"friendgraph/internal/dbsql"
	"friendgraph/internal/relation"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock_repository_test.go -package=user friendgraph/internal/user UserRepository

// UserRepository is the identity store. Lookups that find nothing return
// relation.ErrUserNotFound.
type UserRepository interface {
	CreateUser(ctx context.Context, user *dbsql.User) error
	GetUserByID(ctx context.Context, userID uint64) (*dbsql.User, error)
	GetUserByEmail(ctx context.Context, email string) (*dbsql.User, error)
	// GetUsersByIDs returns the users that exist among ids, in no particular order.
	GetUsersByIDs(ctx context.Context, ids []uint64) ([]*dbsql.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// SearchUsers matches the exact email or a case-insensitive substring of
	// the name, ordered by user id.
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]*dbsql.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbsql.User) error {
	user.Email = common.NormalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *userRepository) GetUserByID(ctx context.Context, userID uint64) (*dbsql.User, error) {
	var user dbsql.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*dbsql.User, error) {
	var user dbsql.User
	err := r.db.WithContext(ctx).Where("email = ?", common.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*dbsql.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*dbsql.User
	err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbsql.User{}).
		Where("email = ?", common.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) SearchUsers(ctx context.Context, query string, limit, offset int) ([]*dbsql.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	var users []*dbsql.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR LOWER(name) LIKE ? ESCAPE '!'", common.NormalizeEmail(query), "%"+escapeLike(strings.ToLower(query))+"%").
		Order("user_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return relation.ErrUserNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// escapeLike makes LIKE treat the wildcard characters in s literally. The
// search query declares '!' as its ESCAPE character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

//go:build wireinject
// +build wireinject

package wire

import (
	"friendgraph/internal/user"

	"github.com/google/wire"
)

func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideDatabase,
		ProvidePairStore,
		ProvideRelationStore,
		ProvideAdmission,
		ProvideTokenManager,
		ProvidePaginator,
		user.NewUserRepository,
		user.NewUserService,
		user.NewFriendService,
		user.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil
}

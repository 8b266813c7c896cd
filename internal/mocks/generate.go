package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/roster --output domain/roster --outpkg rostermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Updater --dir ../domain/roster --output domain/roster --outpkg rostermock --filename updater_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AdviceProvider --dir ../usecase --output usecase --outpkg usecasemock --filename advice_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AdviceCache --dir ../usecase --output usecase --outpkg usecasemock --filename advice_cache_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PlayerPool --dir ../domain/roster --output domain/roster --outpkg rostermock --filename player_pool_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PrincipalInvalidator --dir ../usecase --output usecase --outpkg usecasemock --filename principal_invalidator_mock.go

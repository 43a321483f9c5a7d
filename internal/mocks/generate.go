package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/competition --output domain/competition --outpkg competitionmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/season --output domain/season --outpkg seasonmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/shot --output domain/shot --outpkg shotmock --filename repository_mock.go

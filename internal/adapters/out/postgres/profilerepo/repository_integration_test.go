package profilerepo_test

import (
	"context"
	"testing"
	"time"

	"quickship/internal/adapters/out/postgres/profilerepo"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProfileRepositoryIntegrationTestSuite provides integration tests for
// ProfileRepository using PostgreSQL containers.
type ProfileRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *profilerepo.GormProfileRepository
}

func (suite *ProfileRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&profilerepo.OriginProfileDTO{},
		&profilerepo.PackageProfileDTO{},
	))
}

func (suite *ProfileRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE origin_profiles, package_profiles").Error)
	suite.repository = profilerepo.NewGormProfileRepository(suite.db)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestListOriginProfiles_Empty_ReturnsEmptySlice() {
	profiles, err := suite.repository.ListOriginProfiles(context.Background())
	suite.Require().NoError(err)
	suite.Empty(profiles)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestListOriginProfiles_RespectsListingOrder() {
	ctx := context.Background()

	second := suite.originProfile("Secondary warehouse")
	first := suite.originProfile("Main warehouse")

	// Inserted out of order on purpose; position decides listing order.
	suite.Require().NoError(suite.repository.AddOriginProfile(ctx, second, 2))
	suite.Require().NoError(suite.repository.AddOriginProfile(ctx, first, 1))

	profiles, err := suite.repository.ListOriginProfiles(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(profiles, 2)
	suite.Equal("Main warehouse", profiles[0].Name)
	suite.Equal("Secondary warehouse", profiles[1].Name)
	suite.Equal(first.ID, profiles[0].ID)
	suite.Equal("04538133", profiles[0].PostalCode)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestListPackageProfiles_RoundTripsDimensions() {
	ctx := context.Background()

	preset := shipment.PackageProfile{
		ID:       kernel.NewUUID(),
		HeightCm: 10,
		WidthCm:  20,
		LengthCm: 25,
		WeightKg: 0.8,
	}
	suite.Require().NoError(suite.repository.AddPackageProfile(ctx, preset, 1))

	profiles, err := suite.repository.ListPackageProfiles(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(profiles, 1)
	suite.Equal(preset.ID, profiles[0].ID)
	suite.InEpsilon(10.0, profiles[0].HeightCm, 0.0001)
	suite.InEpsilon(0.8, profiles[0].WeightKg, 0.0001)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestAddPackageProfile_InvalidDimensions_Rejected() {
	ctx := context.Background()

	invalid := shipment.PackageProfile{
		ID:       kernel.NewUUID(),
		HeightCm: 0,
		WidthCm:  20,
		LengthCm: 25,
		WeightKg: 0.8,
	}
	err := suite.repository.AddPackageProfile(ctx, invalid, 1)
	suite.Require().Error(err)

	profiles, err := suite.repository.ListPackageProfiles(ctx)
	suite.Require().NoError(err)
	suite.Empty(profiles)
}

func (suite *ProfileRepositoryIntegrationTestSuite) originProfile(name string) shipment.OriginProfile {
	return shipment.OriginProfile{
		ID:         kernel.NewUUID(),
		Name:       name,
		Email:      "ops@example.com",
		Phone:      "1133334444",
		Street:     "Av Paulista 1000",
		City:       "Sao Paulo",
		State:      "SP",
		PostalCode: "04538133",
	}
}

func TestProfileRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositoryIntegrationTestSuite))
}

package workitemrepo_test

import (
	"context"
	"testing"
	"time"

	"expedition/internal/adapters/out/postgres/workitemrepo"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// WorkItemRepositoryIntegrationTestSuite provides integration tests for the
// work item gateway using PostgreSQL containers.
type WorkItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	gateway   *workitemrepo.GormWorkItems
}

func (suite *WorkItemRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&workitemrepo.WorkItemDTO{}))
}

func (suite *WorkItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE work_items").Error)
	suite.gateway = workitemrepo.NewGormWorkItems(suite.db)
}

func (suite *WorkItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WorkItemRepositoryIntegrationTestSuite) TestUpsert_SameKeyUpdatesInPlace() {
	ctx := context.Background()
	item := suite.createTestItem()

	suite.Require().NoError(suite.gateway.Upsert(ctx, item))

	// a re-sync comes with a fresh candidate ID but the same key
	updated := item
	updated.ID = kernel.NewUUID()
	updated.Boxes = 7
	updated.Sequence = 2
	suite.Require().NoError(suite.gateway.Upsert(ctx, updated))

	items, err := suite.gateway.GetByDelivery(ctx, item.DeliveryOrderID, false)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal(item.ID, items[0].ID)
	suite.InDelta(7, items[0].Boxes, 0.001)
	suite.Equal(2, items[0].Sequence)
}

func (suite *WorkItemRepositoryIntegrationTestSuite) TestDeactivate_KeepsRowForHistory() {
	ctx := context.Background()
	item := suite.createTestItem()
	suite.Require().NoError(suite.gateway.Upsert(ctx, item))

	suite.Require().NoError(suite.gateway.Deactivate(ctx, item.DeliveryOrderID, item.DriverID))

	active, err := suite.gateway.GetByDelivery(ctx, item.DeliveryOrderID, false)
	suite.Require().NoError(err)
	suite.Empty(active)

	all, err := suite.gateway.GetByDelivery(ctx, item.DeliveryOrderID, true)
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.False(all[0].Active)
}

func (suite *WorkItemRepositoryIntegrationTestSuite) TestUpsert_RevivesDeactivatedItem() {
	ctx := context.Background()
	item := suite.createTestItem()
	suite.Require().NoError(suite.gateway.Upsert(ctx, item))
	suite.Require().NoError(suite.gateway.Deactivate(ctx, item.DeliveryOrderID, item.DriverID))

	suite.Require().NoError(suite.gateway.Upsert(ctx, item))

	active, err := suite.gateway.GetByDelivery(ctx, item.DeliveryOrderID, false)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.True(active[0].Active)
}

func (suite *WorkItemRepositoryIntegrationTestSuite) TestDeactivate_MissingItemIsNotAnError() {
	err := suite.gateway.Deactivate(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
}

func (suite *WorkItemRepositoryIntegrationTestSuite) createTestItem() ports.WorkItem {
	date, err := kernel.NewDate(2026, time.April, 2)
	suite.Require().NoError(err)
	start, end := kernel.TimeWindow{}.PlannedRange(date)

	return ports.WorkItem{
		ID:              kernel.NewUUID(),
		DeliveryOrderID: kernel.NewUUID(),
		DriverID:        kernel.NewUUID(),
		Title:           "Delivery WH/OUT/0001",
		Description:     "Delivery: WH/OUT/0001",
		PlannedStart:    start,
		PlannedEnd:      end,
		Sequence:        1,
		Boxes:           3,
		Weight:          40,
		Primary:         true,
		Active:          true,
	}
}

func TestWorkItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WorkItemRepositoryIntegrationTestSuite))
}

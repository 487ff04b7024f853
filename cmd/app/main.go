package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"expedition/cmd"
	httpin "expedition/internal/adapters/in/http"
	"expedition/internal/adapters/out/postgres/documentrepo"
	"expedition/internal/adapters/out/postgres/expeditionrepo"
	"expedition/internal/adapters/out/postgres/fleetrepo"
	"expedition/internal/adapters/out/postgres/workitemrepo"
	"expedition/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
	)

	jobManager := mustStartJobs(&app)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		SplitUserEditedLines: goDotEnvBool("SPLIT_USER_EDITED_LINES"),
		ResyncSchedule:       goDotEnvVariable("RESYNC_SCHEDULE"),
		ResyncCompanyIDs:     goDotEnvVariable("RESYNC_COMPANY_IDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvBool(key string) bool {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return false
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Invalid boolean for %s: %s", key, raw)
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError maps unique index violations onto gorm.ErrDuplicatedKey,
	// which the expedition repository relies on for natural key conflicts.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&expeditionrepo.ExpeditionDTO{},
		&expeditionrepo.LineDTO{},
		&expeditionrepo.AllocationDTO{},
		&expeditionrepo.StateChangeDTO{},
		&documentrepo.DeliveryOrderDTO{},
		&documentrepo.SalesOrderDTO{},
		&documentrepo.InvoiceDTO{},
		&workitemrepo.WorkItemDTO{},
		&fleetrepo.DriverDTO{},
		&fleetrepo.VehicleDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func mustStartJobs(app *cmd.CompositionRoot) *jobs.JobManager {
	companies, err := app.ResyncCompanies()
	if err != nil {
		log.Fatalf("Failed to parse resync companies: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateResyncWorkItemsCommandHandler(),
		companies,
		app.ResyncSchedule(),
		logger,
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateEnsureRoutingCommandHandler(),
		app.CreateAdvanceExpeditionCommandHandler(),
		app.CreateStepBackExpeditionCommandHandler(),
		app.CreateReportExpeditionIssueCommandHandler(),
		app.CreateResetExpeditionCommandHandler(),
		app.CreateChangeMainDriverCommandHandler(),
		app.CreateEditLineParticipantsCommandHandler(),
		app.CreateSetLineVehicleCommandHandler(),
		app.CreateUpdateAllocationCommandHandler(),
		app.CreateRemoveLineCommandHandler(),
		app.CreateReassignWorkItemCommandHandler(),
		app.CreateGetExpeditionQueryHandler(),
		app.CreateGetDayBoardQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

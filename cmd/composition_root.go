package cmd

import (
	"fmt"
	"strings"

	"expedition/internal/adapters/out/postgres"
	"expedition/internal/adapters/out/postgres/fleetrepo"
	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/application/usecases/queries"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) capabilities() ports.Capabilities {
	return fleetrepo.NewGormCapabilities(c.gormDB)
}

func (c *CompositionRoot) drivers() ports.Drivers {
	return fleetrepo.NewGormDrivers(c.gormDB)
}

func (c *CompositionRoot) synchronizer() commands.WorkItemSynchronizer {
	return commands.NewWorkItemSynchronizer(
		fleetrepo.NewGormDrivers(c.gormDB),
		fleetrepo.NewGormFleet(c.gormDB),
	)
}

func (c *CompositionRoot) expeditionUoWFactory() commands.ExpeditionUoWFactory {
	return FuncExpeditionUoWFactory(func() commands.ExpeditionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) routingUoWFactory() commands.RoutingUoWFactory {
	return FuncRoutingUoWFactory(func() commands.RoutingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) mirrorUoWFactory() commands.MirrorUoWFactory {
	return FuncMirrorUoWFactory(func() commands.MirrorUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateEnsureRoutingCommandHandler() commands.EnsureRoutingCommandHandler {
	return commands.NewEnsureRoutingCommandHandler(c.routingUoWFactory(), c.synchronizer())
}

func (c *CompositionRoot) CreateAdvanceExpeditionCommandHandler() commands.AdvanceExpeditionCommandHandler {
	return commands.NewAdvanceExpeditionCommandHandler(c.expeditionUoWFactory())
}

func (c *CompositionRoot) CreateStepBackExpeditionCommandHandler() commands.StepBackExpeditionCommandHandler {
	return commands.NewStepBackExpeditionCommandHandler(c.expeditionUoWFactory())
}

func (c *CompositionRoot) CreateReportExpeditionIssueCommandHandler() commands.ReportExpeditionIssueCommandHandler {
	return commands.NewReportExpeditionIssueCommandHandler(c.expeditionUoWFactory())
}

func (c *CompositionRoot) CreateResetExpeditionCommandHandler() commands.ResetExpeditionCommandHandler {
	return commands.NewResetExpeditionCommandHandler(c.expeditionUoWFactory(), c.capabilities())
}

func (c *CompositionRoot) CreateChangeMainDriverCommandHandler() commands.ChangeMainDriverCommandHandler {
	return commands.NewChangeMainDriverCommandHandler(
		c.mirrorUoWFactory(), c.capabilities(), c.drivers(), c.synchronizer())
}

func (c *CompositionRoot) CreateEditLineParticipantsCommandHandler() commands.EditLineParticipantsCommandHandler {
	return commands.NewEditLineParticipantsCommandHandler(
		c.mirrorUoWFactory(),
		c.capabilities(),
		c.synchronizer(),
		c.config.SplitUserEditedLines,
	)
}

func (c *CompositionRoot) CreateSetLineVehicleCommandHandler() commands.SetLineVehicleCommandHandler {
	return commands.NewSetLineVehicleCommandHandler(c.routingUoWFactory(), c.capabilities(), c.synchronizer())
}

func (c *CompositionRoot) CreateUpdateAllocationCommandHandler() commands.UpdateAllocationCommandHandler {
	return commands.NewUpdateAllocationCommandHandler(c.routingUoWFactory(), c.capabilities(), c.synchronizer())
}

func (c *CompositionRoot) CreateRemoveLineCommandHandler() commands.RemoveLineCommandHandler {
	return commands.NewRemoveLineCommandHandler(c.routingUoWFactory(), c.capabilities(), c.synchronizer())
}

func (c *CompositionRoot) CreateReassignWorkItemCommandHandler() commands.ReassignWorkItemCommandHandler {
	return commands.NewReassignWorkItemCommandHandler(c.mirrorUoWFactory(), c.capabilities(), c.synchronizer())
}

func (c *CompositionRoot) CreateResyncWorkItemsCommandHandler() commands.ResyncWorkItemsCommandHandler {
	return commands.NewResyncWorkItemsCommandHandler(c.routingUoWFactory(), c.synchronizer())
}

func (c *CompositionRoot) CreateGetExpeditionQueryHandler() queries.GetExpeditionQueryHandler {
	return queries.NewGetExpeditionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDayBoardQueryHandler() queries.GetDayBoardQueryHandler {
	return queries.NewGetDayBoardQueryHandler(c.gormDB)
}

// ResyncSchedule returns the cron expression of the work item resync job.
func (c *CompositionRoot) ResyncSchedule() string {
	return c.config.ResyncSchedule
}

// ResyncCompanies parses the configured comma separated company IDs swept by
// the work item resync job.
func (c *CompositionRoot) ResyncCompanies() ([]kernel.UUID, error) {
	raw := strings.Split(c.config.ResyncCompanyIDs, ",")
	companies := make([]kernel.UUID, 0, len(raw))

	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		companyID, err := kernel.UUIDFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid resync company id %q: %w", part, err)
		}

		companies = append(companies, companyID)
	}

	return companies, nil
}

type FuncExpeditionUoWFactory func() commands.ExpeditionUoW

func (f FuncExpeditionUoWFactory) Create() commands.ExpeditionUoW {
	return f()
}

type FuncRoutingUoWFactory func() commands.RoutingUoW

func (f FuncRoutingUoWFactory) Create() commands.RoutingUoW {
	return f()
}

type FuncMirrorUoWFactory func() commands.MirrorUoW

func (f FuncMirrorUoWFactory) Create() commands.MirrorUoW {
	return f()
}

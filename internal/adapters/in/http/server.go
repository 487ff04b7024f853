// Package http exposes the dispatch core over a JSON API. It coordinates
// between HTTP handlers and application use cases, translating domain
// errors into status codes.
package http

import (
	"errors"
	"net/http"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/application/usecases/queries"
	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP requests of the dispatch API.
type Server struct {
	ensureRoutingHandler        commands.EnsureRoutingCommandHandler
	advanceHandler              commands.AdvanceExpeditionCommandHandler
	stepBackHandler             commands.StepBackExpeditionCommandHandler
	reportIssueHandler          commands.ReportExpeditionIssueCommandHandler
	resetHandler                commands.ResetExpeditionCommandHandler
	changeMainDriverHandler     commands.ChangeMainDriverCommandHandler
	editLineParticipantsHandler commands.EditLineParticipantsCommandHandler
	setLineVehicleHandler       commands.SetLineVehicleCommandHandler
	updateAllocationHandler     commands.UpdateAllocationCommandHandler
	removeLineHandler           commands.RemoveLineCommandHandler
	reassignWorkItemHandler     commands.ReassignWorkItemCommandHandler

	getExpeditionHandler queries.GetExpeditionQueryHandler
	getDayBoardHandler   queries.GetDayBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	ensureRoutingHandler commands.EnsureRoutingCommandHandler,
	advanceHandler commands.AdvanceExpeditionCommandHandler,
	stepBackHandler commands.StepBackExpeditionCommandHandler,
	reportIssueHandler commands.ReportExpeditionIssueCommandHandler,
	resetHandler commands.ResetExpeditionCommandHandler,
	changeMainDriverHandler commands.ChangeMainDriverCommandHandler,
	editLineParticipantsHandler commands.EditLineParticipantsCommandHandler,
	setLineVehicleHandler commands.SetLineVehicleCommandHandler,
	updateAllocationHandler commands.UpdateAllocationCommandHandler,
	removeLineHandler commands.RemoveLineCommandHandler,
	reassignWorkItemHandler commands.ReassignWorkItemCommandHandler,
	getExpeditionHandler queries.GetExpeditionQueryHandler,
	getDayBoardHandler queries.GetDayBoardQueryHandler,
) *Server {
	return &Server{
		ensureRoutingHandler:        ensureRoutingHandler,
		advanceHandler:              advanceHandler,
		stepBackHandler:             stepBackHandler,
		reportIssueHandler:          reportIssueHandler,
		resetHandler:                resetHandler,
		changeMainDriverHandler:     changeMainDriverHandler,
		editLineParticipantsHandler: editLineParticipantsHandler,
		setLineVehicleHandler:       setLineVehicleHandler,
		updateAllocationHandler:     updateAllocationHandler,
		removeLineHandler:           removeLineHandler,
		reassignWorkItemHandler:     reassignWorkItemHandler,
		getExpeditionHandler:        getExpeditionHandler,
		getDayBoardHandler:          getDayBoardHandler,
	}
}

// RegisterRoutes mounts the dispatch API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/expeditions", s.GetDayBoard)
	v1.GET("/expeditions/:id", s.GetExpedition)
	v1.POST("/expeditions/ensure-routing", s.EnsureRouting)
	v1.POST("/expeditions/:id/advance", s.AdvanceExpedition)
	v1.POST("/expeditions/:id/step-back", s.StepBackExpedition)
	v1.POST("/expeditions/:id/issues", s.ReportIssue)
	v1.POST("/expeditions/:id/reset", s.ResetExpedition)
	v1.PUT("/expeditions/:id/driver", s.ChangeMainDriver)
	v1.PUT("/expeditions/:id/lines/:lineId/participants", s.EditLineParticipants)
	v1.PUT("/expeditions/:id/lines/:lineId/vehicle", s.SetLineVehicle)
	v1.PUT("/expeditions/:id/lines/:lineId/allocations/:driverId", s.UpdateAllocation)
	v1.DELETE("/expeditions/:id/lines/:lineId", s.RemoveLine)
	v1.POST("/work-items/reassign", s.ReassignWorkItem)
}

// Error is the JSON error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetDayBoard handles GET /api/v1/expeditions - the per-day dispatch board.
func (s *Server) GetDayBoard(ctx echo.Context) error {
	companyID, err := kernel.UUIDFromString(ctx.QueryParam("company_id"))
	if err != nil {
		return badRequest(ctx, "invalid company_id")
	}

	date, err := kernel.DateFromString(ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "invalid date, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetDayBoardQuery(companyID, date)
	if err != nil {
		return s.renderError(ctx, err)
	}

	board, err := s.getDayBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	rows := make([]DayBoardRow, 0, len(board))
	for _, row := range board {
		rows = append(rows, DayBoardRow{
			ID:          row.ID.String(),
			DriverID:    row.DriverID.String(),
			State:       row.State,
			LineCount:   row.LineCount,
			TotalBoxes:  row.TotalBoxes,
			TotalWeight: row.TotalWeight,
		})
	}

	return ctx.JSON(http.StatusOK, rows)
}

// GetExpedition handles GET /api/v1/expeditions/:id.
func (s *Server) GetExpedition(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	query, err := queries.NewGetExpeditionQuery(expeditionID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	board, err := s.getExpeditionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toExpeditionResponse(board))
}

// EnsureRouting handles POST /api/v1/expeditions/ensure-routing.
// Called by the fulfillment system when a sales order is confirmed; the
// operation is idempotent and repeats are no-ops.
func (s *Server) EnsureRouting(ctx echo.Context) error {
	var request EnsureRoutingRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	companyID, err := kernel.UUIDFromString(request.CompanyID)
	if err != nil {
		return badRequest(ctx, "invalid company_id")
	}

	date, err := kernel.DateFromString(request.Date)
	if err != nil {
		return badRequest(ctx, "invalid date, expected YYYY-MM-DD")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "invalid driver_id")
	}

	deliveryOrderID, err := kernel.UUIDFromString(request.DeliveryOrderID)
	if err != nil {
		return badRequest(ctx, "invalid delivery_order_id")
	}

	cmd, err := commands.NewEnsureRoutingCommand(companyID, date, driverID, deliveryOrderID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.ensureRoutingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceExpedition handles POST /api/v1/expeditions/:id/advance.
func (s *Server) AdvanceExpedition(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	var request AdvanceRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := expedition.StateFromString(request.Target)
	if err != nil {
		return badRequest(ctx, "invalid target state")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewAdvanceExpeditionCommand(expeditionID, target, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.advanceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StepBackExpedition handles POST /api/v1/expeditions/:id/step-back.
// On hold this resumes the remembered state, otherwise it undoes one
// forward step.
func (s *Server) StepBackExpedition(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewStepBackExpeditionCommand(expeditionID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.stepBackHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportIssue handles POST /api/v1/expeditions/:id/issues - puts the
// expedition on hold with the reported issue.
func (s *Server) ReportIssue(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	var request ReportIssueRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	kind, err := expedition.IssueKindFromString(request.Kind)
	if err != nil {
		return badRequest(ctx, "invalid issue kind")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewReportExpeditionIssueCommand(expeditionID, kind, request.Note, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.reportIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResetExpedition handles POST /api/v1/expeditions/:id/reset.
func (s *Server) ResetExpedition(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewResetExpeditionCommand(expeditionID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.resetHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeMainDriver handles PUT /api/v1/expeditions/:id/driver.
func (s *Server) ChangeMainDriver(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	var request ChangeMainDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "invalid driver_id")
	}

	vehicleID, err := optionalID(request.VehicleID)
	if err != nil {
		return badRequest(ctx, "invalid vehicle_id")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewChangeMainDriverCommand(expeditionID, driverID, vehicleID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.changeMainDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EditLineParticipants handles PUT /api/v1/expeditions/:id/lines/:lineId/participants.
func (s *Server) EditLineParticipants(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	var request EditParticipantsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	participants := make([]kernel.UUID, 0, len(request.DriverIDs))
	for _, raw := range request.DriverIDs {
		driverID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid driver id: "+raw)
		}
		participants = append(participants, driverID)
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewEditLineParticipantsCommand(expeditionID, lineID, participants, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.editLineParticipantsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetLineVehicle handles PUT /api/v1/expeditions/:id/lines/:lineId/vehicle.
// A null vehicle_id clears the stop-level override.
func (s *Server) SetLineVehicle(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	var request SetVehicleRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	vehicleID, err := optionalID(request.VehicleID)
	if err != nil {
		return badRequest(ctx, "invalid vehicle_id")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewSetLineVehicleCommand(expeditionID, lineID, vehicleID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.setLineVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateAllocation handles PUT /api/v1/expeditions/:id/lines/:lineId/allocations/:driverId.
func (s *Server) UpdateAllocation(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driverId"))
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	var request UpdateAllocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	vehicleID, err := optionalID(request.VehicleID)
	if err != nil {
		return badRequest(ctx, "invalid vehicle_id")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewUpdateAllocationCommand(
		expeditionID, lineID, driverID, request.Boxes, request.Weight, vehicleID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.updateAllocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveLine handles DELETE /api/v1/expeditions/:id/lines/:lineId.
// The actor is passed as the actor_id query parameter.
func (s *Server) RemoveLine(ctx echo.Context) error {
	expeditionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid expedition id")
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	actorID, err := kernel.UUIDFromString(ctx.QueryParam("actor_id"))
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewRemoveLineCommand(expeditionID, lineID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.removeLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignWorkItem handles POST /api/v1/work-items/reassign - follows a
// task reassignment made in the work management system.
func (s *Server) ReassignWorkItem(ctx echo.Context) error {
	var request ReassignRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	deliveryOrderID, err := kernel.UUIDFromString(request.DeliveryOrderID)
	if err != nil {
		return badRequest(ctx, "invalid delivery_order_id")
	}

	oldDriverID, err := kernel.UUIDFromString(request.OldDriverID)
	if err != nil {
		return badRequest(ctx, "invalid old_driver_id")
	}

	newDriverID, err := kernel.UUIDFromString(request.NewDriverID)
	if err != nil {
		return badRequest(ctx, "invalid new_driver_id")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewReassignWorkItemCommand(deliveryOrderID, oldDriverID, newDriverID, actorID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.reassignWorkItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// renderError maps domain and application errors to HTTP status codes.
func (s *Server) renderError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	var locked *expedition.LockedError
	var loadValidation *expedition.LoadValidationError

	switch {
	case errors.As(err, &notFound), errors.Is(err, commands.ErrDriverNotInvolved):
		return respond(ctx, http.StatusNotFound, err)
	case errors.As(err, &locked):
		return respond(ctx, http.StatusForbidden, err)
	case errors.As(err, &loadValidation):
		return respond(ctx, http.StatusUnprocessableEntity, err)
	case isValidationError(err):
		return respond(ctx, http.StatusBadRequest, err)
	case isConflictError(err):
		return respond(ctx, http.StatusConflict, err)
	default:
		return respond(ctx, http.StatusInternalServerError, err)
	}
}

func isValidationError(err error) bool {
	var required *errs.ValueIsRequiredError
	var invalid *errs.ValueIsInvalidError
	var outOfRange *errs.ValueIsOutOfRangeError
	return errors.As(err, &required) || errors.As(err, &invalid) || errors.As(err, &outOfRange)
}

func isConflictError(err error) bool {
	return errors.Is(err, expedition.ErrStateChangeIsNotForward) ||
		errors.Is(err, expedition.ErrDeliveryOrderAlreadyRouted) ||
		errors.Is(err, expedition.ErrLastLineCannotBeRemoved)
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func optionalID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

package commands_test

import (
	"testing"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceExpeditionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	exp := testExpedition(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewAdvanceExpeditionCommand(exp.ID(), expedition.Preparing, actorID)
	require.NoError(t, err)

	expeditionRepo := new(MockExpeditionRepository)
	uow := new(MockExpeditionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ExpeditionRepository").Return(expeditionRepo).Once(),
		expeditionRepo.On("Get", ctx, exp.ID()).Return(exp, nil).Once(),
		expeditionRepo.On("Update", ctx, exp).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockExpeditionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceExpeditionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, expedition.Preparing, exp.State())
	require.Len(t, exp.StateLog(), 1)
	expeditionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceExpeditionCommandHandler_Handle_LoadPreconditionFails(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	exp := testExpedition(t, kernel.NewUUID(), kernel.NewUUID())
	line, err := exp.AddLine(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, line.AddParticipant(kernel.NewUUID()))

	cmd, err := commands.NewAdvanceExpeditionCommand(exp.ID(), expedition.Loaded, actorID)
	require.NoError(t, err)

	expeditionRepo := new(MockExpeditionRepository)
	uow := new(MockExpeditionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ExpeditionRepository").Return(expeditionRepo).Once(),
		expeditionRepo.On("Get", ctx, exp.ID()).Return(exp, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockExpeditionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceExpeditionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var loadErr *expedition.LoadValidationError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, expedition.Planned, exp.State())
	expeditionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdvanceExpeditionCommandHandler_Handle_InvalidCommand(t *testing.T) {
	handler := commands.NewAdvanceExpeditionCommandHandler(new(MockExpeditionUoWFactory))

	err := handler.Handle(t.Context(), commands.AdvanceExpeditionCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAdvanceExpeditionCommandIsNotConstructed)
}

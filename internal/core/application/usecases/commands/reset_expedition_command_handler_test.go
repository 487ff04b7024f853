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

func TestResetExpeditionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	exp := testExpedition(t, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, exp.Advance(expedition.Ready, actorID))

	cmd, err := commands.NewResetExpeditionCommand(exp.ID(), actorID)
	require.NoError(t, err)

	capabilities := new(MockCapabilities)
	capabilities.On("IsDispatcher", ctx, actorID).Return(false, nil).Once()

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

	handler := commands.NewResetExpeditionCommandHandler(factory, capabilities)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, expedition.Planned, exp.State())
	capabilities.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResetExpeditionCommandHandler_Handle_LockedForNonDispatchers(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	exp := testExpedition(t, kernel.NewUUID(), kernel.NewUUID())
	_, err := exp.AddLine(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, exp.Advance(expedition.Loaded, actorID))

	cmd, err := commands.NewResetExpeditionCommand(exp.ID(), actorID)
	require.NoError(t, err)

	capabilities := new(MockCapabilities)
	capabilities.On("IsDispatcher", ctx, actorID).Return(false, nil).Once()

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

	handler := commands.NewResetExpeditionCommandHandler(factory, capabilities)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var lockedErr *expedition.LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, expedition.Loaded, exp.State())
	expeditionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

package repository

import (
	"context"
	"testing"

	"fortuna/infrastructure"
	"fortuna/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersists(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, infrastructure.NewNoopEventPublisher())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	user, err := uow.UserRepository().Create(ctx, "alice", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	fetched, err := NewUserRepository(testDB.DB).GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, int64(1000), fetched.Balance)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, infrastructure.NewNoopEventPublisher())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	user, err := uow.UserRepository().Create(ctx, "bob", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	fetched, err := NewUserRepository(testDB.DB).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestUnitOfWork_RollbackAfterCommitIsSafe(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, infrastructure.NewNoopEventPublisher())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.UserRepository().Create(ctx, "carol", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	// The deferred rollback pattern must tolerate a committed tx.
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_AccessBeforeBeginPanics(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, infrastructure.NewNoopEventPublisher())
	uow := factory.Create()

	assert.Panics(t, func() { uow.UserRepository() })
}

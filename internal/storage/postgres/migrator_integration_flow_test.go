package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMigrator_UpDownLifecycle(t *testing.T) {
	store := rawTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// Стартуем с пустой схемы.
	require.NoError(t, store.MigrateDown(ctx, 100))

	steps := []struct {
		name string
		run  func() error
		want MigrationStatus
	}{
		{name: "initial", run: func() error { return nil }, want: MigrationStatus{Version: 0, Applied: 0, Pending: 2}},
		{name: "up catalog", run: func() error { return store.MigrateUp(ctx, 1) }, want: MigrationStatus{Version: 1, Applied: 1, Pending: 1}},
		{name: "up rest", run: func() error { return store.MigrateUp(ctx, 0) }, want: MigrationStatus{Version: 2, Applied: 2, Pending: 0}},
		{name: "up again", run: func() error { return store.MigrateUp(ctx, 0) }, want: MigrationStatus{Version: 2, Applied: 2, Pending: 0}},
		{name: "down default", run: func() error { return store.MigrateDown(ctx, 0) }, want: MigrationStatus{Version: 1, Applied: 1, Pending: 1}},
		{name: "down catalog", run: func() error { return store.MigrateDown(ctx, 1) }, want: MigrationStatus{Version: 0, Applied: 0, Pending: 2}},
		{name: "down on empty", run: func() error { return store.MigrateDown(ctx, 1) }, want: MigrationStatus{Version: 0, Applied: 0, Pending: 2}},
	}

	for _, step := range steps {
		require.NoError(t, step.run(), step.name)
		status, err := store.MigrationStatus(ctx)
		require.NoError(t, err, step.name)
		require.Equal(t, step.want, status, step.name)
	}
}

func TestMigrator_NilStore(t *testing.T) {
	var store *Store
	ctx := context.Background()

	require.ErrorIs(t, store.MigrateUp(ctx, 0), errStoreNotInitialized)
	require.ErrorIs(t, store.MigrateDown(ctx, 1), errStoreNotInitialized)
	_, err := store.MigrationStatus(ctx)
	require.ErrorIs(t, err, errStoreNotInitialized)
}

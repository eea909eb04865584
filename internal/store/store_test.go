package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/theme"
)

var _ theme.Store = (*DB)(nil)

func openMemory(t *testing.T) *DB {
	t.Helper()
	d, err := OpenMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestPreferenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	_, ok, err := d.Preference(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.SetPreference(ctx, "s1", theme.Dark))
	p, ok, err := d.Preference(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, p)

	require.NoError(t, d.SetPreference(ctx, "s1", theme.System))
	p, _, err = d.Preference(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, theme.System, p)

	n, err := d.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRejectsUnknownPreference(t *testing.T) {
	d := openMemory(t)
	err := d.SetPreference(context.Background(), "s1", theme.Preference("sepia"))
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	d := openMemory(t)
	require.NoError(t, d.migrate(context.Background()))
	require.NoError(t, d.migrate(context.Background()))
}

func TestMigrateAddsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	// Rebuild the table the way the first release created it.
	_, err := d.db.ExecContext(ctx, `DROP TABLE theme_preferences`)
	require.NoError(t, err)
	_, err = d.db.ExecContext(ctx, schema)
	require.NoError(t, err)
	_, err = d.db.ExecContext(ctx, `INSERT INTO theme_preferences (session_id, preference) VALUES ('old', 'light')`)
	require.NoError(t, err)

	require.NoError(t, d.migrate(ctx))

	p, ok, err := d.Preference(ctx, "old")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Light, p)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return base }
	require.NoError(t, d.SetPreference(ctx, "stale", theme.Dark))

	d.now = func() time.Time { return base.AddDate(0, 6, 0) }
	require.NoError(t, d.SetPreference(ctx, "fresh", theme.Light))

	d.now = func() time.Time { return base.AddDate(1, 0, 1) }
	removed, err := d.Prune(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, ok, err := d.Preference(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = d.Preference(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPruneKeepsReturningVisitors(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return base }
	require.NoError(t, d.SetPreference(ctx, "regular", theme.Dark))
	require.NoError(t, d.SetPreference(ctx, "gone", theme.Light))

	// Only "regular" comes back, a month before the cutoff.
	d.now = func() time.Time { return base.AddDate(0, 11, 0) }
	_, ok, err := d.Preference(ctx, "regular")
	require.NoError(t, err)
	require.True(t, ok)

	d.now = func() time.Time { return base.AddDate(1, 0, 1) }
	removed, err := d.Prune(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	p, ok, err := d.Preference(ctx, "regular")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, p)
	_, ok, err = d.Preference(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "folio.db")

	d, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, d.SetPreference(ctx, "s1", theme.Light))
	require.NoError(t, d.Close())

	d, err = Open(path, nil)
	require.NoError(t, err)
	defer d.Close()
	p, ok, err := d.Preference(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Light, p)
}

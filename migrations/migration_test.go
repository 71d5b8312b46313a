package migrations

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestMigrator(t *testing.T) (*gorm.DB, *Migrator) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := NewMigrator(db)
	require.NoError(t, err)
	return db, m
}

func table(name string) MigrationDefinition {
	return MigrationDefinition{
		Name: "create_" + name,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + name + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + name).Error
		},
	}
}

func TestMigrateAndRollback(t *testing.T) {
	db, m := newTestMigrator(t)
	m.AddMigration(table("alpha"))
	require.NoError(t, m.Migrate())

	m.AddMigration(table("beta"))
	require.NoError(t, m.Migrate())
	require.NoError(t, m.Migrate(), "nothing pending")

	status, err := m.Status()
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, 1, status[0].Batch)
	assert.Equal(t, 2, status[1].Batch)
	assert.True(t, db.Migrator().HasTable("beta"))

	require.NoError(t, m.Rollback(1))
	assert.False(t, db.Migrator().HasTable("beta"))
	assert.True(t, db.Migrator().HasTable("alpha"))

	require.NoError(t, m.Rollback(5))
	assert.False(t, db.Migrator().HasTable("alpha"))
	status, err = m.Status()
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestMigrateStopsOnFailure(t *testing.T) {
	db, m := newTestMigrator(t)
	m.AddMigration(table("ok"))
	m.AddMigration(MigrationDefinition{
		Name: "broken",
		Up:   func(db *gorm.DB) error { return db.Exec("NOT SQL").Error },
	})

	require.Error(t, m.Migrate())
	status, err := m.Status()
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, "create_ok", status[0].Name)
	assert.True(t, db.Migrator().HasTable("ok"))
}

func TestRollbackWithoutDown(t *testing.T) {
	_, m := newTestMigrator(t)
	m.AddMigration(MigrationDefinition{
		Name: "one_way",
		Up:   func(*gorm.DB) error { return nil },
	})
	require.NoError(t, m.Migrate())
	assert.Error(t, m.Rollback(1))
}

func TestCoreMigrationsAreNamedUniquely(t *testing.T) {
	seen := map[string]bool{}
	for _, mig := range GetAllMigrations() {
		assert.False(t, seen[mig.Name], mig.Name)
		seen[mig.Name] = true
		assert.NotNil(t, mig.Up)
		assert.NotNil(t, mig.Down)
	}
}

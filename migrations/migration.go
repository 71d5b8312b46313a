package migrations

import (
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, eris.Wrap(err, "failed to create migrations table")
	}
	return &Migrator{
		db:         db,
		migrations: []MigrationDefinition{},
	}, nil
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate runs every pending migration in one new batch.
func (m *Migrator) Migrate() error {
	log.Info().Msg("running database migrations")

	batch, err := m.latestBatch()
	if err != nil {
		return err
	}
	batch++

	for _, migration := range m.migrations {
		ran, err := m.hasRun(migration.Name)
		if err != nil {
			return err
		}
		if ran {
			continue
		}

		log.Info().Str("migration", migration.Name).Msg("migrating")
		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return eris.Wrapf(err, "migration %s failed", migration.Name)
			}
			record := Migration{Name: migration.Name, Batch: batch}
			return eris.Wrapf(tx.Create(&record).Error, "failed to record migration %s", migration.Name)
		})
		if err != nil {
			return err
		}
	}

	log.Info().Int("batch", batch).Msg("migrations completed")
	return nil
}

// Rollback undoes the last steps batches, newest migration first.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	log.Info().Int("steps", steps).Msg("rolling back migrations")

	batch, err := m.latestBatch()
	if err != nil {
		return err
	}

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return eris.Wrap(err, "failed to load migration batch")
		}

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return eris.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return eris.Errorf("rollback not defined for migration: %s", record.Name)
			}

			log.Info().Str("migration", record.Name).Msg("rolling back")
			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return eris.Wrapf(err, "rollback failed for %s", record.Name)
				}
				return eris.Wrapf(tx.Delete(&record).Error, "failed to remove migration record %s", record.Name)
			})
			if err != nil {
				return err
			}
		}

		batch--
	}

	log.Info().Msg("rollback completed")
	return nil
}

// Status lists the migrations that have run, oldest first.
func (m *Migrator) Status() ([]Migration, error) {
	var records []Migration
	err := m.db.Order("batch ASC, id ASC").Find(&records).Error
	return records, eris.Wrap(err, "failed to load migration status")
}

func (m *Migrator) hasRun(name string) (bool, error) {
	var count int64
	err := m.db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error
	return count > 0, eris.Wrap(err, "failed to check migration")
}

func (m *Migrator) latestBatch() (int, error) {
	var migration Migration
	err := m.db.Order("batch DESC").First(&migration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return migration.Batch, eris.Wrap(err, "failed to read latest batch")
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}

package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"gorm.io/gorm"
)

// SchemaMigration records an applied schema version
type SchemaMigration struct {
	Version   string    `gorm:"primaryKey;size:64"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the SchemaMigration model
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Migration is one ordered schema step; Up must be safe to re-run
type Migration struct {
	Version string
	Up      func(tx *gorm.DB) error
}

// Migrations lists every schema step in the order it is applied
var Migrations = []Migration{
	{
		Version: "0001_bills_employees",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&entity.Bill{}, &entity.Employee{})
		},
	},
	{
		Version: "0002_hoods",
		Up: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&entity.Hood{}); err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO hoods (name, created_at) VALUES (?, ?) ON CONFLICT (name) DO NOTHING",
				entity.UnassignedHood, time.Now().UTC(),
			).Error
		},
	},
	{
		Version: "0003_memberships",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&entity.Membership{}, &entity.MembershipHistory{})
		},
	},
	{
		Version: "0004_deleted_bills",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&entity.DeletedBill{})
		},
	},
	{
		Version: "0005_shifts",
		Up: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&entity.Shift{}); err != nil {
				return err
			}
			return tx.Exec(
				"CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_open ON shifts (employee_cid) WHERE clock_out IS NULL",
			).Error
		},
	},
	{
		Version: "0006_loyalty",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&entity.LoyaltyAccount{}, &entity.LoyaltyHistory{})
		},
	},
	{
		Version: "0007_idempotency_keys",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&entity.IdempotencyKey{})
		},
	},
}

// Migrate applies every migration not yet recorded in schema_migrations
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied := 0
	for _, m := range Migrations {
		err := db.Transaction(func(tx *gorm.DB) error {
			var existing SchemaMigration
			err := tx.First(&existing, "version = ?", m.Version).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := m.Up(tx); err != nil {
				return err
			}
			applied++
			return tx.Create(&SchemaMigration{Version: m.Version, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Version, err)
		}
	}

	log.Printf("Database migrations completed (%d applied)", applied)
	return nil
}

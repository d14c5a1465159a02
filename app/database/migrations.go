package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createBaseTables(db); err != nil {
		return err
	}
	if err := addMobileMoneyColumns(db); err != nil {
		return err
	}
	if err := seedLevels(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createBaseTables(db *sql.DB) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
		`CREATE TABLE IF NOT EXISTS levels (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			annual_fee BIGINT NOT NULL DEFAULT 0 CHECK (annual_fee >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			level_id UUID NOT NULL REFERENCES levels(id),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			class_id UUID REFERENCES classes(id),
			birth_date DATE,
			parent_phone VARCHAR(20),
			parent_email VARCHAR(255),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			amount BIGINT NOT NULL CHECK (amount > 0),
			payment_method VARCHAR(30) NOT NULL,
			payment_type VARCHAR(30) NOT NULL,
			payment_date DATE NOT NULL,
			period_description TEXT,
			reference_number VARCHAR(100),
			status VARCHAR(20) NOT NULL DEFAULT 'Confirmé',
			notes TEXT,
			recorded_by UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student_id ON payments(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to run base schema migration: %v", err)
			return err
		}
	}
	return nil
}

// addMobileMoneyColumns adds the method-specific payment columns introduced
// after the initial schema shipped.
func addMobileMoneyColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'payments'
				AND column_name = 'mobile_number'
			) THEN
				ALTER TABLE payments ADD COLUMN mobile_number VARCHAR(20);
				RAISE NOTICE 'Added mobile_number column to payments';
			END IF;
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'payments'
				AND column_name = 'bank_details'
			) THEN
				ALTER TABLE payments ADD COLUMN bank_details TEXT;
				RAISE NOTICE 'Added bank_details column to payments';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for payment method columns: %v", err)
		return err
	}
	return nil
}

// seedLevels inserts the school levels with their annual tuition fees when
// they are not configured yet. Existing rows are left untouched.
func seedLevels(db *sql.DB) error {
	query := `
		INSERT INTO levels (name, annual_fee) VALUES
			('Maternelle', 300000),
			('CI', 350000),
			('CP', 350000),
			('CE1', 400000),
			('CE2', 400000),
			('CM1', 450000),
			('CM2', 450000)
		ON CONFLICT (name) DO NOTHING
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to seed levels: %v", err)
		return err
	}
	return nil
}

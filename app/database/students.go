package database

import (
	"database/sql"

	"github.com/PORTABLEA02/primaire2/app/models"
)

// GetStudentByID retrieves one active student with their class and level.
func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	s := &models.Student{}
	var classID, className, levelID, levelName sql.NullString
	var annualFee sql.NullInt64
	var parentPhone, parentEmail sql.NullString

	query := `SELECT s.id, s.first_name, s.last_name, s.class_id, s.birth_date,
			s.parent_phone, s.parent_email, s.is_active, s.created_at, s.updated_at,
			c.name, l.id, l.name, l.annual_fee
		  FROM students s
		  LEFT JOIN classes c ON s.class_id = c.id
		  LEFT JOIN levels l ON c.level_id = l.id
		  WHERE s.id = $1 AND s.is_active = true`

	err := db.QueryRow(query, studentID).Scan(
		&s.ID, &s.FirstName, &s.LastName, &classID, &s.BirthDate,
		&parentPhone, &parentEmail, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&className, &levelID, &levelName, &annualFee,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, dataUnavailable("get student", err)
	}

	s.ParentPhone = parentPhone.String
	s.ParentEmail = parentEmail.String
	if classID.Valid {
		s.ClassID = &classID.String
		s.Class = &models.Class{ID: classID.String, Name: className.String, LevelID: levelID.String}
		if levelID.Valid {
			s.Class.Level = &models.Level{ID: levelID.String, Name: levelName.String, AnnualFee: annualFee.Int64}
		}
	}
	return s, nil
}

// GetClasses lists active classes with their level, annual fee and student
// count. Class and level configuration itself is managed elsewhere; from the
// ledger's side this is read-only fee-plan input.
func GetClasses(db *sql.DB) ([]models.Class, error) {
	query := `SELECT c.id, c.name, c.level_id, c.is_active, c.created_at, c.updated_at,
			l.id, l.name, l.annual_fee,
			COUNT(s.id) FILTER (WHERE s.is_active)
		  FROM classes c
		  JOIN levels l ON c.level_id = l.id
		  LEFT JOIN students s ON s.class_id = c.id
		  WHERE c.is_active = true
		  GROUP BY c.id, c.name, c.level_id, c.is_active, c.created_at, c.updated_at,
			l.id, l.name, l.annual_fee
		  ORDER BY l.name, c.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, dataUnavailable("get classes", err)
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		var c models.Class
		var level models.Level
		err := rows.Scan(
			&c.ID, &c.Name, &c.LevelID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&level.ID, &level.Name, &level.AnnualFee,
			&c.StudentCount,
		)
		if err != nil {
			return nil, dataUnavailable("get classes", err)
		}
		c.Level = &level
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("get classes", err)
	}
	return classes, nil
}

// GetLevels lists the configured levels and their annual fees.
func GetLevels(db *sql.DB) ([]models.Level, error) {
	rows, err := db.Query(
		`SELECT id, name, annual_fee FROM levels WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, dataUnavailable("get levels", err)
	}
	defer rows.Close()

	levels := make([]models.Level, 0)
	for rows.Next() {
		var l models.Level
		if err := rows.Scan(&l.ID, &l.Name, &l.AnnualFee); err != nil {
			return nil, dataUnavailable("get levels", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("get levels", err)
	}
	return levels, nil
}

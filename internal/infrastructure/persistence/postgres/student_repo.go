package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

const studentColumns = `
	admission_no, first_name, middle_name, family_name, grade,
	tuition_fee, food_fee, text_books_fee, exercise_books_fee,
	assesment_tool_fee, transport_fee, activity_fee, diary_fee,
	admission_fee, total_fee, amount_paid, balance, transport_mode, created_at
`

// Create persists a new fee record. When s.AdmissionNo is empty the next
// sequential number is allocated inside the same transaction: the latest
// record row is locked while the successor is computed, and the unique index
// on admission_no remains the final arbiter against any concurrent insert.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if s.AdmissionNo == "" {
			last, err := lastAdmissionNoLocked(ctx, tx)
			if err != nil {
				return err
			}
			next, err := student.NextAdmissionNo(last)
			if err != nil {
				return fmt.Errorf("failed to derive next admission number: %w", err)
			}
			s.AdmissionNo = next
		}

		query := `
			INSERT INTO students (` + studentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`

		var familyName *string
		if s.FamilyName != "" {
			familyName = &s.FamilyName
		}

		_, err := tx.Exec(ctx, query,
			s.AdmissionNo.String(),
			s.FirstName,
			s.MiddleName,
			familyName,
			s.Grade.String(),
			s.Fees.Tuition,
			s.Fees.Food,
			s.Fees.TextBooks,
			s.Fees.ExerciseBooks,
			s.Fees.AssessmentTool,
			s.Fees.Transport,
			s.Fees.Activity,
			s.Fees.Diary,
			s.Fees.Admission,
			s.TotalFee,
			s.AmountPaid,
			s.Balance,
			s.TransportMode.String(),
			s.CreatedAt,
		)
		if err != nil {
			if IsUniqueViolation(err) {
				return student.ErrDuplicateAdmissionNo
			}
			return fmt.Errorf("failed to create student: %w", err)
		}

		return nil
	})
}

// lastAdmissionNoLocked reads the most recently inserted admission number,
// locking the row so concurrent allocators serialize on it.
func lastAdmissionNoLocked(ctx context.Context, tx pgx.Tx) (student.AdmissionNo, error) {
	var no string
	err := tx.QueryRow(ctx, `
		SELECT admission_no FROM students
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE
	`).Scan(&no)
	if err != nil {
		if IsNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read last admission number: %w", err)
	}
	return student.AdmissionNo(no), nil
}

// GetByAdmissionNo returns the record for an admission number.
func (r *StudentRepository) GetByAdmissionNo(ctx context.Context, no student.AdmissionNo) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE admission_no = $1`

	row := r.conn.QueryRow(ctx, query, no.String())
	return scanStudent(row)
}

// List returns records ordered by insertion, newest first.
func (r *StudentRepository) List(ctx context.Context, opts student.ListOptions) ([]*student.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		ORDER BY id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.conn.Query(ctx, query, opts.Offset, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*student.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// Count returns the total number of records.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// scanStudent scans a single student row.
func scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student
	var admissionNo, grade, transportMode string
	var familyName *string

	err := row.Scan(
		&admissionNo,
		&s.FirstName,
		&s.MiddleName,
		&familyName,
		&grade,
		&s.Fees.Tuition,
		&s.Fees.Food,
		&s.Fees.TextBooks,
		&s.Fees.ExerciseBooks,
		&s.Fees.AssessmentTool,
		&s.Fees.Transport,
		&s.Fees.Activity,
		&s.Fees.Diary,
		&s.Fees.Admission,
		&s.TotalFee,
		&s.AmountPaid,
		&s.Balance,
		&transportMode,
		&s.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, student.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	s.AdmissionNo = student.AdmissionNo(admissionNo)
	s.Grade = student.Grade(grade)
	s.TransportMode = student.TransportMode(transportMode)
	if familyName != nil {
		s.FamilyName = *familyName
	}

	return &s, nil
}

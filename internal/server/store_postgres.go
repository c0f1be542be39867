// store_postgres.go - PostgreSQL implementations of the three stores.
// Donor profiles are flat columns; the reference lists are JSONB documents
// queried with containment so the nested lookups stay one round trip.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const donorColumns = `id, name, mobile, women_number, email, blood_group,
	last_donation_date, image, note, gender, dob,
	present_district, present_upazilla, present_address,
	permanent_district, permanent_upazilla, permanent_address,
	password_hash, created_at`

// PostgresDonorStore persists donors in the donors table.
type PostgresDonorStore struct {
	db *sql.DB
}

var _ DonorStore = (*PostgresDonorStore)(nil)

func NewPostgresDonorStore(db *sql.DB) *PostgresDonorStore {
	return &PostgresDonorStore{db: db}
}

func scanDonor(row interface{ Scan(...any) error }) (*Donor, error) {
	var d Donor
	var lastDonation, dob sql.NullTime
	err := row.Scan(
		&d.ID, &d.Name, &d.Mobile, &d.WomenNumber, &d.Email, &d.BloodGroup,
		&lastDonation, &d.Image, &d.Note, &d.Gender, &dob,
		&d.PresentAddress.District, &d.PresentAddress.Upazilla, &d.PresentAddress.Address,
		&d.PermanentAddress.District, &d.PermanentAddress.Upazilla, &d.PermanentAddress.Address,
		&d.PasswordHash, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastDonation.Valid {
		t := lastDonation.Time
		d.LastDonationDate = &t
	}
	if dob.Valid {
		t := dob.Time
		d.DOB = &t
	}
	return &d, nil
}

func (s *PostgresDonorStore) Create(ctx context.Context, d *Donor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO donors (`+donorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		d.ID, d.Name, d.Mobile, d.WomenNumber, d.Email, d.BloodGroup,
		d.LastDonationDate, d.Image, d.Note, d.Gender, d.DOB,
		d.PresentAddress.District, d.PresentAddress.Upazilla, d.PresentAddress.Address,
		d.PermanentAddress.District, d.PermanentAddress.Upazilla, d.PermanentAddress.Address,
		d.PasswordHash, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

func (s *PostgresDonorStore) FindByID(ctx context.Context, id string) (*Donor, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+donorColumns+` FROM donors WHERE id = $1`, id)
	d, err := scanDonor(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find donor by id: %w", err)
	}
	return d, nil
}

// FindByNumber resolves the donor by primary mobile number first and the
// alternate women's number second, as a single query.
func (s *PostgresDonorStore) FindByNumber(ctx context.Context, number string) (*Donor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+donorColumns+`
		  FROM donors
		 WHERE mobile = $1 OR women_number = $1
		 ORDER BY (mobile = $1) DESC, created_at ASC
		 LIMIT 1
	`, number)
	d, err := scanDonor(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find donor by number: %w", err)
	}
	return d, nil
}

// FindByMobile resolves the donor by the primary mobile number only; the
// alternate women's number is not consulted.
func (s *PostgresDonorStore) FindByMobile(ctx context.Context, mobile string) (*Donor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+donorColumns+`
		  FROM donors
		 WHERE mobile = $1
		 ORDER BY created_at ASC
		 LIMIT 1
	`, mobile)
	d, err := scanDonor(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find donor by mobile: %w", err)
	}
	return d, nil
}

func (s *PostgresDonorStore) MobileExists(ctx context.Context, mobile string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM donors WHERE mobile = $1)`, mobile).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("mobile exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresDonorStore) All(ctx context.Context) ([]Donor, error) {
	return s.list(ctx, `SELECT `+donorColumns+` FROM donors ORDER BY created_at ASC`)
}

func (s *PostgresDonorStore) ByBloodGroup(ctx context.Context, bloodGroup string) ([]Donor, error) {
	return s.list(ctx,
		`SELECT `+donorColumns+` FROM donors WHERE blood_group = $1 ORDER BY created_at ASC`,
		bloodGroup)
}

func (s *PostgresDonorStore) list(ctx context.Context, query string, args ...any) ([]Donor, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()

	var donors []Donor
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		donors = append(donors, *d)
	}
	return donors, rows.Err()
}

// Update overwrites every mutable column of the donor row. Concurrent
// updates to the same row are last-write-wins.
func (s *PostgresDonorStore) Update(ctx context.Context, d *Donor) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE donors
		   SET name = $2, mobile = $3, women_number = $4, email = $5,
		       blood_group = $6, last_donation_date = $7, image = $8,
		       note = $9, gender = $10, dob = $11,
		       present_district = $12, present_upazilla = $13, present_address = $14,
		       permanent_district = $15, permanent_upazilla = $16, permanent_address = $17,
		       password_hash = $18
		 WHERE id = $1
	`,
		d.ID, d.Name, d.Mobile, d.WomenNumber, d.Email,
		d.BloodGroup, d.LastDonationDate, d.Image,
		d.Note, d.Gender, d.DOB,
		d.PresentAddress.District, d.PresentAddress.Upazilla, d.PresentAddress.Address,
		d.PermanentAddress.District, d.PermanentAddress.Upazilla, d.PermanentAddress.Address,
		d.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresReferenceStore persists reference records with the district and
// upazilla lists as JSONB.
type PostgresReferenceStore struct {
	db *sql.DB
}

var _ ReferenceStore = (*PostgresReferenceStore)(nil)

func NewPostgresReferenceStore(db *sql.DB) *PostgresReferenceStore {
	return &PostgresReferenceStore{db: db}
}

func (s *PostgresReferenceStore) Create(ctx context.Context, rec *ReferenceRecord) error {
	districts, err := json.Marshal(rec.Districts)
	if err != nil {
		return fmt.Errorf("marshal districts: %w", err)
	}
	upazillas, err := json.Marshal(rec.Upazillas)
	if err != nil {
		return fmt.Errorf("marshal upazillas: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reference_records (id, blood_group, districts, upazillas)
		VALUES ($1, $2, $3, $4)
	`, rec.ID, rec.BloodGroup, districts, upazillas)
	if err != nil {
		return fmt.Errorf("insert reference record: %w", err)
	}
	return nil
}

func scanReference(row interface{ Scan(...any) error }) (*ReferenceRecord, error) {
	var rec ReferenceRecord
	var districts, upazillas []byte
	if err := row.Scan(&rec.ID, &rec.BloodGroup, &districts, &upazillas); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(districts, &rec.Districts); err != nil {
		return nil, fmt.Errorf("decode districts: %w", err)
	}
	if err := json.Unmarshal(upazillas, &rec.Upazillas); err != nil {
		return nil, fmt.Errorf("decode upazillas: %w", err)
	}
	if rec.Districts == nil {
		rec.Districts = []District{}
	}
	if rec.Upazillas == nil {
		rec.Upazillas = []Upazilla{}
	}
	return &rec, nil
}

func (s *PostgresReferenceStore) All(ctx context.Context) ([]ReferenceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, blood_group, districts, upazillas
		  FROM reference_records
		 ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list reference records: %w", err)
	}
	defer rows.Close()

	var recs []ReferenceRecord
	for rows.Next() {
		rec, err := scanReference(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reference record: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// ByDistrictID returns the record whose district list contains an entry with
// the given identifier, using JSONB containment against the GIN index.
func (s *PostgresReferenceStore) ByDistrictID(ctx context.Context, districtID string) (*ReferenceRecord, error) {
	probe, _ := json.Marshal([]map[string]string{{"id": districtID}})
	return s.findByContainment(ctx, "districts", probe)
}

// ByUpazillaDistrictID returns the record whose upazilla list contains an
// entry referencing the given parent-district identifier.
func (s *PostgresReferenceStore) ByUpazillaDistrictID(ctx context.Context, districtID string) (*ReferenceRecord, error) {
	probe, _ := json.Marshal([]map[string]string{{"district_id": districtID}})
	return s.findByContainment(ctx, "upazillas", probe)
}

func (s *PostgresReferenceStore) findByContainment(ctx context.Context, column string, probe []byte) (*ReferenceRecord, error) {
	// column is one of the two fixed JSONB column names, never user input.
	row := s.db.QueryRowContext(ctx, `
		SELECT id, blood_group, districts, upazillas
		  FROM reference_records
		 WHERE `+column+` @> $1::jsonb
		 ORDER BY created_at ASC
		 LIMIT 1
	`, probe)
	rec, err := scanReference(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reference lookup: %w", err)
	}
	return rec, nil
}

// PostgresChatStore persists board messages.
type PostgresChatStore struct {
	db *sql.DB
}

var _ ChatStore = (*PostgresChatStore)(nil)

func NewPostgresChatStore(db *sql.DB) *PostgresChatStore {
	return &PostgresChatStore{db: db}
}

func (s *PostgresChatStore) Create(ctx context.Context, msg *ChatMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, name, image, message, mobile, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.Name, msg.Image, msg.Message, msg.Mobile, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (s *PostgresChatStore) All(ctx context.Context) ([]ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image, message, mobile, created_at
		  FROM chat_messages
		 ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Image, &m.Message, &m.Mobile, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

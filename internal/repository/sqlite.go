package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/campusvote/pollz/internal/errors"
	"github.com/campusvote/pollz/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS voting_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			voting_type TEXT UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT 0,
			start_time DATETIME,
			end_time DATETIME,
			message_before_start TEXT DEFAULT 'Voting hasn''t started yet. Please check back later.',
			message_during_voting TEXT DEFAULT 'Voting is now active! Cast your vote below.',
			message_after_end TEXT DEFAULT 'Voting has ended. Thank you for participating!',
			message_inactive TEXT DEFAULT 'Voting is currently disabled by administrators.',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS election_positions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS election_candidates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			position_id INTEGER NOT NULL,
			party TEXT,
			manifesto TEXT,
			agenda TEXT,
			image TEXT,
			vote_count INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (position_id) REFERENCES election_positions(id),
			UNIQUE(name, position_id)
		)`,
		`CREATE TABLE IF NOT EXISTS anonymous_votes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			voter_hash TEXT NOT NULL,
			candidate_id INTEGER NOT NULL,
			position_id INTEGER NOT NULL,
			vote_signature TEXT NOT NULL,
			voted_at TEXT NOT NULL,
			ip_hash TEXT DEFAULT '',
			FOREIGN KEY (candidate_id) REFERENCES election_candidates(id),
			FOREIGN KEY (position_id) REFERENCES election_positions(id),
			UNIQUE(voter_hash, position_id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			google_id TEXT UNIQUE,
			email TEXT UNIQUE NOT NULL,
			name TEXT,
			picture TEXT,
			is_verified BOOLEAN DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_vote_flags (
			user_id INTEGER NOT NULL,
			position_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, position_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (position_id) REFERENCES election_positions(id)
		)`,
		`CREATE TABLE IF NOT EXISTS departments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			short_name TEXT UNIQUE NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			department_id INTEGER NOT NULL,
			instructor TEXT,
			description TEXT,
			avg_grading REAL DEFAULT 0,
			avg_toughness REAL DEFAULT 0,
			avg_overall REAL DEFAULT 0,
			upvotes INTEGER DEFAULT 0,
			downvotes INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (department_id) REFERENCES departments(id)
		)`,
		`CREATE TABLE IF NOT EXISTS course_ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			course_id INTEGER NOT NULL,
			grading REAL NOT NULL,
			toughness REAL NOT NULL,
			overall REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (course_id) REFERENCES courses(id),
			UNIQUE(user_id, course_id)
		)`,
		`CREATE TABLE IF NOT EXISTS course_comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			course_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			is_anonymous BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (course_id) REFERENCES courses(id)
		)`,
		`CREATE TABLE IF NOT EXISTS clubs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			short_name TEXT,
			type TEXT NOT NULL,
			size TEXT,
			category TEXT,
			role TEXT,
			description TEXT,
			highlights TEXT,
			vote_count INTEGER DEFAULT 0,
			image TEXT,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(name, type)
		)`,
		`CREATE TABLE IF NOT EXISTS club_votes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			club_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (club_id) REFERENCES clubs(id),
			UNIQUE(user_id, club_id)
		)`,
		`CREATE TABLE IF NOT EXISTS club_comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			club_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			is_anonymous BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (club_id) REFERENCES clubs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_voter_hash ON anonymous_votes(voter_hash)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_position_time ON anonymous_votes(position_id, voted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_candidate_time ON anonymous_votes(candidate_id, voted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_position ON election_candidates(position_id)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_department ON courses(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_club_votes_club ON club_votes(club_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The unique index is the race-resolution point for concurrent
// votes, so this is the only storage error with business meaning.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// ==================== Voting Session Methods ====================

// GetSession retrieves the voting session for a voting type
func (r *Repository) GetSession(ctx context.Context, votingType string) (*models.VotingSession, error) {
	var s models.VotingSession
	var start, end sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, voting_type, is_active, start_time, end_time,
		       message_before_start, message_during_voting, message_after_end, message_inactive
		FROM voting_sessions WHERE voting_type = ?
	`, votingType).Scan(&s.ID, &s.Name, &s.VotingType, &s.Active, &start, &end,
		&s.MessageBeforeStart, &s.MessageDuring, &s.MessageAfterEnd, &s.MessageInactive)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if start.Valid {
		t := start.Time
		s.StartTime = &t
	}
	if end.Valid {
		t := end.Time
		s.EndTime = &t
	}
	return &s, nil
}

// UpsertSession creates or replaces the session config for a voting type
func (r *Repository) UpsertSession(ctx context.Context, s *models.VotingSession) error {
	var start, end interface{}
	if s.StartTime != nil {
		start = *s.StartTime
	}
	if s.EndTime != nil {
		end = *s.EndTime
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO voting_sessions (name, voting_type, is_active, start_time, end_time,
			message_before_start, message_during_voting, message_after_end, message_inactive)
		VALUES (?, ?, ?, ?, ?,
			COALESCE(NULLIF(?, ''), 'Voting hasn''t started yet. Please check back later.'),
			COALESCE(NULLIF(?, ''), 'Voting is now active! Cast your vote below.'),
			COALESCE(NULLIF(?, ''), 'Voting has ended. Thank you for participating!'),
			COALESCE(NULLIF(?, ''), 'Voting is currently disabled by administrators.'))
		ON CONFLICT(voting_type) DO UPDATE SET
			name = excluded.name,
			is_active = excluded.is_active,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			message_before_start = excluded.message_before_start,
			message_during_voting = excluded.message_during_voting,
			message_after_end = excluded.message_after_end,
			message_inactive = excluded.message_inactive,
			updated_at = CURRENT_TIMESTAMP
	`, s.Name, s.VotingType, s.Active, start, end,
		s.MessageBeforeStart, s.MessageDuring, s.MessageAfterEnd, s.MessageInactive)
	return err
}

// SetSessionActive toggles the manual active flag for a voting type
func (r *Repository) SetSessionActive(ctx context.Context, votingType string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE voting_sessions SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE voting_type = ?
	`, active, votingType)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Election Position Methods ====================

// ListPositions returns all active election positions
func (r *Repository) ListPositions(ctx context.Context) ([]models.ElectionPosition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), is_active
		FROM election_positions WHERE is_active = 1 ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []models.ElectionPosition
	for rows.Next() {
		var p models.ElectionPosition
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Active); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// GetPosition returns an active position by ID
func (r *Repository) GetPosition(ctx context.Context, id int) (*models.ElectionPosition, error) {
	var p models.ElectionPosition
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), is_active
		FROM election_positions WHERE id = ? AND is_active = 1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Active)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("position not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePosition creates a new election position
func (r *Repository) CreatePosition(ctx context.Context, name, description string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO election_positions (name, description, is_active) VALUES (?, ?, 1)`,
		name, description)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ==================== Election Candidate Methods ====================

const candidateColumns = `
	c.id, c.name, c.position_id, p.name, COALESCE(c.party, ''), COALESCE(c.manifesto, ''),
	c.agenda, COALESCE(c.image, ''), c.vote_count, c.is_active`

func scanCandidate(scan func(...interface{}) error) (*models.ElectionCandidate, error) {
	var c models.ElectionCandidate
	var agendaJSON sql.NullString
	if err := scan(&c.ID, &c.Name, &c.PositionID, &c.PositionName, &c.Party, &c.Manifesto,
		&agendaJSON, &c.Image, &c.VoteCount, &c.Active); err != nil {
		return nil, err
	}
	if agendaJSON.Valid && agendaJSON.String != "" {
		if err := json.Unmarshal([]byte(agendaJSON.String), &c.Agenda); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// ListCandidates returns active candidates ordered by vote count, optionally
// filtered to one position (positionID 0 means all)
func (r *Repository) ListCandidates(ctx context.Context, positionID int) ([]models.ElectionCandidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM election_candidates c
		JOIN election_positions p ON c.position_id = p.id
		WHERE c.is_active = 1`
	args := []interface{}{}
	if positionID != 0 {
		query += ` AND c.position_id = ?`
		args = append(args, positionID)
	}
	query += ` ORDER BY c.vote_count DESC, c.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []models.ElectionCandidate
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// GetCandidate returns an active candidate by ID
func (r *Repository) GetCandidate(ctx context.Context, id int) (*models.ElectionCandidate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+candidateColumns+`
		FROM election_candidates c
		JOIN election_positions p ON c.position_id = p.id
		WHERE c.id = ? AND c.is_active = 1
	`, id)
	c, err := scanCandidate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("candidate not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCandidate creates a new election candidate
func (r *Repository) CreateCandidate(ctx context.Context, name string, positionID int, party, manifesto string, agenda []string, image string) (int64, error) {
	var agendaJSON sql.NullString
	if len(agenda) > 0 {
		jsonData, _ := json.Marshal(agenda) // Marshal on []string never fails
		agendaJSON = sql.NullString{String: string(jsonData), Valid: true}
	}
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO election_candidates (name, position_id, party, manifesto, agenda, image, is_active)
		VALUES (?, ?, ?, ?, ?, ?, 1)
	`, name, positionID, party, manifesto, agendaJSON, image)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ==================== Anonymous Vote Methods ====================

// HasVoted reports whether a ledger entry exists for (voter hash, position)
func (r *Repository) HasVoted(ctx context.Context, voterHash string, positionID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM anonymous_votes WHERE voter_hash = ? AND position_id = ?)
	`, voterHash, positionID).Scan(&exists)
	return exists, err
}

// CastAnonymousVote appends a vote to the ledger and refreshes the
// candidate's cached vote count in the same transaction, so a successful
// return guarantees tally == ledger count. A concurrent cast for the same
// (voter_hash, position) loses to the unique index and gets
// ErrDuplicateVote; nothing is committed in that case.
func (r *Repository) CastAnonymousVote(ctx context.Context, v *models.AnonymousVote) (int64, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO anonymous_votes (voter_hash, candidate_id, position_id, vote_signature, voted_at, ip_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.VoterHash, v.CandidateID, v.PositionID, v.Signature, v.VotedAt, v.IPHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, 0, ErrDuplicateVote
		}
		return 0, 0, err
	}
	voteID, err := result.LastInsertId()
	if err != nil {
		return 0, 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE election_candidates
		SET vote_count = (SELECT COUNT(*) FROM anonymous_votes WHERE candidate_id = ?)
		WHERE id = ?
	`, v.CandidateID, v.CandidateID); err != nil {
		return 0, 0, err
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT vote_count FROM election_candidates WHERE id = ?`, v.CandidateID).Scan(&count); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return voteID, count, nil
}

// GetAnonymousVote returns a ledger entry by ID (for integrity auditing)
func (r *Repository) GetAnonymousVote(ctx context.Context, id int64) (*models.AnonymousVote, error) {
	var v models.AnonymousVote
	err := r.db.QueryRowContext(ctx, `
		SELECT id, voter_hash, candidate_id, position_id, vote_signature, voted_at, COALESCE(ip_hash, '')
		FROM anonymous_votes WHERE id = ?
	`, id).Scan(&v.ID, &v.VoterHash, &v.CandidateID, &v.PositionID, &v.Signature, &v.VotedAt, &v.IPHash)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("vote not found")
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CountVotesForCandidate returns the ledger count for a candidate
func (r *Repository) CountVotesForCandidate(ctx context.Context, candidateID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM anonymous_votes WHERE candidate_id = ?`, candidateID).Scan(&count)
	return count, err
}

// CountVotesForPosition returns the ledger count for a position
func (r *Repository) CountVotesForPosition(ctx context.Context, positionID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM anonymous_votes WHERE position_id = ?`, positionID).Scan(&count)
	return count, err
}

// CountAnonymousVotes returns the total ledger size
func (r *Repository) CountAnonymousVotes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM anonymous_votes`).Scan(&count)
	return count, err
}

// ==================== User Methods ====================

// GetUserByEmail returns a user by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, COALESCE(google_id, ''), email, COALESCE(name, ''), COALESCE(picture, ''), is_verified FROM users WHERE email = ?`, email)
}

// GetUser returns a user by ID
func (r *Repository) GetUser(ctx context.Context, id int) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, COALESCE(google_id, ''), email, COALESCE(name, ''), COALESCE(picture, ''), is_verified FROM users WHERE id = ?`, id)
}

func (r *Repository) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Picture, &u.Verified)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates a new user from a verified identity assertion
func (r *Repository) CreateUser(ctx context.Context, u *models.User) (int, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (google_id, email, name, picture, is_verified) VALUES (?, ?, ?, ?, ?)
	`, u.GoogleID, u.Email, u.Name, u.Picture, u.Verified)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

// CountUsers returns the total number of registered users
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// SetVoteFlag records the per-user "has voted for this position" convenience
// flag. This flag links to identity by design: it lives on the user's own
// profile and only the user can read it. Idempotent.
func (r *Repository) SetVoteFlag(ctx context.Context, userID, positionID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_vote_flags (user_id, position_id) VALUES (?, ?)`, userID, positionID)
	return err
}

// GetVoteFlags returns the position IDs the user has flagged as voted
func (r *Repository) GetVoteFlags(ctx context.Context, userID int) (map[int]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT position_id FROM user_vote_flags WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := make(map[int]bool)
	for rows.Next() {
		var positionID int
		if err := rows.Scan(&positionID); err != nil {
			return nil, err
		}
		flags[positionID] = true
	}
	return flags, rows.Err()
}

// ==================== Department / Course Methods ====================

// ListDepartments returns all departments
func (r *Repository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, short_name, COALESCE(description, '') FROM departments ORDER BY short_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.ShortName, &d.Description); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// CreateDepartment creates a new department
func (r *Repository) CreateDepartment(ctx context.Context, name, shortName, description string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO departments (name, short_name, description) VALUES (?, ?, ?)`,
		name, shortName, description)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CourseFilter narrows and orders a course listing
type CourseFilter struct {
	Search     string // matches code, name or instructor
	Department string // department short name
	SortBy     string // overall (default), grading, toughness, upvotes
}

// ListCourses returns active courses matching the filter
func (r *Repository) ListCourses(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := `
		SELECT c.id, c.code, c.name, c.department_id, d.short_name, COALESCE(c.instructor, ''),
		       COALESCE(c.description, ''), c.avg_grading, c.avg_toughness, c.avg_overall,
		       c.upvotes, c.downvotes, c.is_active
		FROM courses c
		JOIN departments d ON c.department_id = d.id
		WHERE c.is_active = 1`
	args := []interface{}{}

	if filter.Search != "" {
		query += ` AND (c.code LIKE ? OR c.name LIKE ? OR c.instructor LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Department != "" {
		query += ` AND d.short_name = ?`
		args = append(args, filter.Department)
	}

	switch filter.SortBy {
	case "grading":
		query += ` ORDER BY c.avg_grading DESC`
	case "toughness":
		query += ` ORDER BY c.avg_toughness` // lower toughness first
	case "upvotes":
		query += ` ORDER BY c.upvotes DESC`
	default:
		query += ` ORDER BY c.avg_overall DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.DepartmentID, &c.DepartmentShort, &c.Instructor,
			&c.Description, &c.AvgGrading, &c.AvgToughness, &c.AvgOverall,
			&c.Upvotes, &c.Downvotes, &c.Active); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse returns an active course by ID
func (r *Repository) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.code, c.name, c.department_id, d.short_name, COALESCE(c.instructor, ''),
		       COALESCE(c.description, ''), c.avg_grading, c.avg_toughness, c.avg_overall,
		       c.upvotes, c.downvotes, c.is_active
		FROM courses c
		JOIN departments d ON c.department_id = d.id
		WHERE c.id = ? AND c.is_active = 1
	`, id).Scan(&c.ID, &c.Code, &c.Name, &c.DepartmentID, &c.DepartmentShort, &c.Instructor,
		&c.Description, &c.AvgGrading, &c.AvgToughness, &c.AvgOverall,
		&c.Upvotes, &c.Downvotes, &c.Active)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("course not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCourse creates a new course
func (r *Repository) CreateCourse(ctx context.Context, code, name string, departmentID int, instructor, description string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (code, name, department_id, instructor, description, is_active)
		VALUES (?, ?, ?, ?, ?, 1)
	`, code, name, departmentID, instructor, description)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpsertCourseRating creates or updates a user's rating and recomputes the
// course's aggregate averages in the same transaction. Returns whether the
// rating was newly created.
func (r *Repository) UpsertCourseRating(ctx context.Context, rating *models.CourseRating) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM course_ratings WHERE user_id = ? AND course_id = ?`,
		rating.UserID, rating.CourseID).Scan(&existing)
	if err != nil {
		return false, err
	}
	created := existing == 0

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO course_ratings (user_id, course_id, grading, toughness, overall)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, course_id) DO UPDATE SET
			grading = excluded.grading,
			toughness = excluded.toughness,
			overall = excluded.overall,
			updated_at = CURRENT_TIMESTAMP
	`, rating.UserID, rating.CourseID, rating.Grading, rating.Toughness, rating.Overall); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE courses SET
			avg_grading = COALESCE((SELECT AVG(grading) FROM course_ratings WHERE course_id = ?), 0),
			avg_toughness = COALESCE((SELECT AVG(toughness) FROM course_ratings WHERE course_id = ?), 0),
			avg_overall = COALESCE((SELECT AVG(overall) FROM course_ratings WHERE course_id = ?), 0)
		WHERE id = ?
	`, rating.CourseID, rating.CourseID, rating.CourseID, rating.CourseID); err != nil {
		return false, err
	}

	return created, tx.Commit()
}

// CountCourseRatings returns the total number of ratings
func (r *Repository) CountCourseRatings(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM course_ratings`).Scan(&count)
	return count, err
}

// AddCourseComment adds a comment to a course
func (r *Repository) AddCourseComment(ctx context.Context, userID, courseID int, text string, anonymous bool) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO course_comments (user_id, course_id, text, is_anonymous) VALUES (?, ?, ?, ?)
	`, userID, courseID, text, anonymous)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListCourseComments returns comments for a course, newest first
func (r *Repository) ListCourseComments(ctx context.Context, courseID int) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cc.id, cc.text, cc.is_anonymous, COALESCE(u.name, ''), cc.created_at
		FROM course_comments cc
		JOIN users u ON cc.user_id = u.id
		WHERE cc.course_id = ?
		ORDER BY cc.created_at DESC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// ==================== Club Methods ====================

// ClubFilter narrows a club listing
type ClubFilter struct {
	Type     string // department or club
	Category string
	Size     string // major or minor, departments only
}

// ListClubs returns active clubs matching the filter, most voted first
func (r *Repository) ListClubs(ctx context.Context, filter ClubFilter) ([]models.Club, error) {
	query := `
		SELECT id, name, COALESCE(short_name, ''), type, COALESCE(size, ''), COALESCE(category, ''),
		       COALESCE(role, ''), COALESCE(description, ''), highlights, vote_count, COALESCE(image, ''), is_active
		FROM clubs WHERE is_active = 1`
	args := []interface{}{}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Size != "" {
		query += ` AND size = ?`
		args = append(args, filter.Size)
	}
	query += ` ORDER BY vote_count DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		c, err := scanClub(rows.Scan)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, *c)
	}
	return clubs, rows.Err()
}

// GetClub returns an active club by ID
func (r *Repository) GetClub(ctx context.Context, id int) (*models.Club, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(short_name, ''), type, COALESCE(size, ''), COALESCE(category, ''),
		       COALESCE(role, ''), COALESCE(description, ''), highlights, vote_count, COALESCE(image, ''), is_active
		FROM clubs WHERE id = ? AND is_active = 1
	`, id)
	c, err := scanClub(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("club not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanClub(scan func(...interface{}) error) (*models.Club, error) {
	var c models.Club
	var highlightsJSON sql.NullString
	if err := scan(&c.ID, &c.Name, &c.ShortName, &c.Type, &c.Size, &c.Category,
		&c.Role, &c.Description, &highlightsJSON, &c.VoteCount, &c.Image, &c.Active); err != nil {
		return nil, err
	}
	if highlightsJSON.Valid && highlightsJSON.String != "" {
		if err := json.Unmarshal([]byte(highlightsJSON.String), &c.Highlights); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// CreateClub creates a new department/club entry
func (r *Repository) CreateClub(ctx context.Context, c *models.Club) (int64, error) {
	var highlightsJSON sql.NullString
	if len(c.Highlights) > 0 {
		jsonData, _ := json.Marshal(c.Highlights) // Marshal on []string never fails
		highlightsJSON = sql.NullString{String: string(jsonData), Valid: true}
	}
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO clubs (name, short_name, type, size, category, role, description, highlights, image, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`, c.Name, c.ShortName, c.Type, c.Size, c.Category, c.Role, c.Description, highlightsJSON, c.Image)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CastClubVote records a user's club vote and refreshes the club's cached
// vote count in the same transaction. A second vote by the same user for the
// same club loses to the unique index and gets ErrDuplicateVote.
func (r *Repository) CastClubVote(ctx context.Context, userID, clubID int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO club_votes (user_id, club_id) VALUES (?, ?)`, userID, clubID); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateVote
		}
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE clubs SET vote_count = (SELECT COUNT(*) FROM club_votes WHERE club_id = ?) WHERE id = ?
	`, clubID, clubID); err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT vote_count FROM clubs WHERE id = ?`, clubID).Scan(&count); err != nil {
		return 0, err
	}

	return count, tx.Commit()
}

// CountClubVotes returns the total number of club votes
func (r *Repository) CountClubVotes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM club_votes`).Scan(&count)
	return count, err
}

// AddClubComment adds a comment to a club
func (r *Repository) AddClubComment(ctx context.Context, userID, clubID int, text string, anonymous bool) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO club_comments (user_id, club_id, text, is_anonymous) VALUES (?, ?, ?, ?)
	`, userID, clubID, text, anonymous)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListClubComments returns comments for a club, newest first
func (r *Repository) ListClubComments(ctx context.Context, clubID int) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cc.id, cc.text, cc.is_anonymous, COALESCE(u.name, ''), cc.created_at
		FROM club_comments cc
		JOIN users u ON cc.user_id = u.id
		WHERE cc.club_id = ?
		ORDER BY cc.created_at DESC
	`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func scanComments(rows *sql.Rows) ([]models.Comment, error) {
	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		var createdAt time.Time
		if err := rows.Scan(&c.ID, &c.Text, &c.Anonymous, &c.Author, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		if c.Anonymous {
			c.Author = ""
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// ==================== Stats Methods ====================

// GetVotingStats returns platform-wide voting statistics
func (r *Repository) GetVotingStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	counts := []struct {
		key   string
		query string
	}{
		{"total_users", `SELECT COUNT(*) FROM users`},
		{"election_votes", `SELECT COUNT(*) FROM anonymous_votes`},
		{"course_ratings", `SELECT COUNT(*) FROM course_ratings`},
		{"club_votes", `SELECT COUNT(*) FROM club_votes`},
		{"total_comments", `SELECT (SELECT COUNT(*) FROM course_comments) + (SELECT COUNT(*) FROM club_comments)`},
		{"active_positions", `SELECT COUNT(*) FROM election_positions WHERE is_active = 1`},
		{"active_courses", `SELECT COUNT(*) FROM courses WHERE is_active = 1`},
		{"active_clubs", `SELECT COUNT(*) FROM clubs WHERE is_active = 1`},
	}

	for _, c := range counts {
		var n int
		if err := r.db.QueryRowContext(ctx, c.query).Scan(&n); err != nil {
			return nil, err
		}
		stats[c.key] = n
	}

	return stats, nil
}

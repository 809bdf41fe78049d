package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Social groups the optional social-network links of a profile.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Experience is a work-history entry owned by a user's profile.
type Experience struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a study-history entry owned by a user's profile.
type Education struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is one-to-one with a user. Name and Avatar are denormalized from
// the users table on reads so listings do not need a second lookup.
type Profile struct {
	UserID         string       `json:"user_id"`
	Name           string       `json:"name,omitempty"`
	Avatar         string       `json:"avatar,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experiences    []Experience `json:"experience"`
	Educations     []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// SplitSkills turns a comma-separated skills string into a trimmed,
// order-preserving slice; empty segments are dropped.
func SplitSkills(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// Upsert creates or replaces the caller's profile in one atomic statement.
func (r *ProfileRepo) Upsert(ctx context.Context, p *Profile) error {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO profiles
			(user_id, company, website, location, status, bio, github_username,
			 skills, youtube, twitter, instagram, linkedin, facebook)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			company=VALUES(company), website=VALUES(website),
			location=VALUES(location), status=VALUES(status), bio=VALUES(bio),
			github_username=VALUES(github_username), skills=VALUES(skills),
			youtube=VALUES(youtube), twitter=VALUES(twitter),
			instagram=VALUES(instagram), linkedin=VALUES(linkedin),
			facebook=VALUES(facebook)`,
		p.UserID, p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, skills, p.Social.Youtube, p.Social.Twitter,
		p.Social.Instagram, p.Social.Linkedin, p.Social.Facebook)
	return err
}

const profileColumns = `p.user_id, u.name, u.avatar, p.company, p.website,
	p.location, p.status, p.bio, p.github_username, p.skills,
	p.youtube, p.twitter, p.instagram, p.linkedin, p.facebook, p.updated_at`

func scanProfile(row interface{ Scan(...any) error }) (Profile, error) {
	var p Profile
	var skills []byte
	err := row.Scan(&p.UserID, &p.Name, &p.Avatar, &p.Company, &p.Website,
		&p.Location, &p.Status, &p.Bio, &p.GithubUsername, &skills,
		&p.Social.Youtube, &p.Social.Twitter, &p.Social.Instagram,
		&p.Social.Linkedin, &p.Social.Facebook, &p.UpdatedAt)
	if err != nil {
		return Profile{}, err
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// GetByUserID loads a profile with its user fields and child records.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles p JOIN users u ON u.id=p.user_id WHERE p.user_id=? LIMIT 1",
		userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	if p.Experiences, err = r.listExperiences(ctx, userID); err != nil {
		return Profile{}, err
	}
	if p.Educations, err = r.listEducations(ctx, userID); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ListAll returns every profile with user name/avatar. Child records are
// fetched in two grouped queries rather than per profile.
func (r *ProfileRepo) ListAll(ctx context.Context) ([]Profile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles p JOIN users u ON u.id=p.user_id ORDER BY p.updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := map[string]int{}
	profiles := make([]Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		p.Experiences = []Experience{}
		p.Educations = []Education{}
		byUser[p.UserID] = len(profiles)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exps, err := r.listExperiences(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, e := range exps {
		if i, ok := byUser[e.UserID]; ok {
			profiles[i].Experiences = append(profiles[i].Experiences, e)
		}
	}
	edus, err := r.listEducations(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, e := range edus {
		if i, ok := byUser[e.UserID]; ok {
			profiles[i].Educations = append(profiles[i].Educations, e)
		}
	}
	return profiles, nil
}

// AddExperience inserts a work-history entry, generating its id.
func (r *ProfileRepo) AddExperience(ctx context.Context, e *Experience) error {
	e.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO experiences
			(id, user_id, title, company, location, from_date, to_date, current, description)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		e.ID, e.UserID, e.Title, e.Company, e.Location, e.From, e.To, e.Current, e.Description)
	return err
}

// RemoveExperience deletes an entry scoped to its owner in one statement;
// a foreign user id can never match someone else's row.
func (r *ProfileRepo) RemoveExperience(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM experiences WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddEducation inserts a study-history entry, generating its id.
func (r *ProfileRepo) AddEducation(ctx context.Context, e *Education) error {
	e.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO educations
			(id, user_id, school, degree, field_of_study, from_date, to_date, current, description)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		e.ID, e.UserID, e.School, e.Degree, e.FieldOfStudy, e.From, e.To, e.Current, e.Description)
	return err
}

// RemoveEducation deletes an entry scoped to its owner in one statement.
func (r *ProfileRepo) RemoveEducation(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM educations WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// listExperiences returns entries for one user, or for all users when
// userID is empty (used by ListAll). Newest first, matching the upstream
// unshift ordering.
func (r *ProfileRepo) listExperiences(ctx context.Context, userID string) ([]Experience, error) {
	q := `SELECT id, user_id, title, company, location, from_date, to_date, current, description
		FROM experiences`
	args := []any{}
	if userID != "" {
		q += " WHERE user_id=?"
		args = append(args, userID)
	}
	q += " ORDER BY from_date DESC, created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Experience, 0)
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Company, &e.Location,
			&e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) listEducations(ctx context.Context, userID string) ([]Education, error) {
	q := `SELECT id, user_id, school, degree, field_of_study, from_date, to_date, current, description
		FROM educations`
	args := []any{}
	if userID != "" {
		q += " WHERE user_id=?"
		args = append(args, userID)
	}
	q += " ORDER BY from_date DESC, created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Education, 0)
	for rows.Next() {
		var e Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.School, &e.Degree, &e.FieldOfStudy,
			&e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

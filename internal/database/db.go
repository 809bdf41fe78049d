package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the application tables when they do not exist yet.
// Likes, experience and education entries are child rows rather than
// embedded documents so that add/remove/like/unlike are single atomic
// statements instead of load-modify-save cycles.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			avatar VARCHAR(512) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id CHAR(36) PRIMARY KEY,
			company VARCHAR(255) NOT NULL DEFAULT '',
			website VARCHAR(255) NOT NULL DEFAULT '',
			location VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(255) NOT NULL,
			bio TEXT NOT NULL,
			github_username VARCHAR(255) NOT NULL DEFAULT '',
			skills JSON NOT NULL,
			youtube VARCHAR(255) NOT NULL DEFAULT '',
			twitter VARCHAR(255) NOT NULL DEFAULT '',
			instagram VARCHAR(255) NOT NULL DEFAULT '',
			linkedin VARCHAR(255) NOT NULL DEFAULT '',
			facebook VARCHAR(255) NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_profiles_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS experiences (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			title VARCHAR(255) NOT NULL,
			company VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			from_date DATETIME NOT NULL,
			to_date DATETIME NULL,
			current BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_experiences_user (user_id),
			CONSTRAINT fk_experiences_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS educations (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			school VARCHAR(255) NOT NULL,
			degree VARCHAR(255) NOT NULL,
			field_of_study VARCHAR(255) NOT NULL,
			from_date DATETIME NOT NULL,
			to_date DATETIME NULL,
			current BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_educations_user (user_id),
			CONSTRAINT fk_educations_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			text TEXT NOT NULL,
			name VARCHAR(255) NOT NULL,
			avatar VARCHAR(512) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_posts_user (user_id),
			KEY idx_posts_created (created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			post_id CHAR(36) NOT NULL,
			user_id CHAR(36) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (post_id, user_id),
			CONSTRAINT fk_likes_post FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/feedline-dev/feedline/internal/domain"
	internal_errors "github.com/feedline-dev/feedline/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.UserStorage interface)
// =========================================================================

// SaveUser is the public entry point for creating a new user. It wraps the
// core logic in a transaction to ensure the operation is atomic.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User is a public, read-only method to fetch a user by their email.
func (s *Storage) User(email domain.Email) (domain.User, error) {
	return s.user(s.db, "email = $1", email)
}

// UserById is a public, read-only method to fetch a user by their id.
func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.user(s.db, "id = $1", id)
}

// UpdateStatus overwrites the user's status line.
func (s *Storage) UpdateStatus(id domain.UserId, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateStatus(tx, id, status)
	})
}

// AppendUserPost adds a post id to the end of the owner's post list.
func (s *Storage) AppendUserPost(userId domain.UserId, postId domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.appendUserPost(tx, userId, postId)
	})
}

// RemoveUserPost drops a post id from the owner's post list.
func (s *Storage) RemoveUserPost(userId domain.UserId, postId domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.removeUserPost(tx, userId, postId)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

// saveUser contains the core logic for inserting a new user record.
func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id int64
	err := q.QueryRow("INSERT INTO users(email, name, password_hash, status) VALUES($1, $2, $3, $4) RETURNING id",
		user.Email, user.Name, user.PassHash, user.Status).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return -1, internal_errors.NewValidation("Email already taken", internal_errors.FieldError{Field: "email", Message: "already in use"})
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// user contains the core logic for fetching a single user record.
func (s *Storage) user(q Querier, where string, arg any) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT id, email, name, password_hash, status, posts FROM users WHERE "+where, arg).
		Scan(&user.Id, &user.Email, &user.Name, &user.PassHash, &user.Status, &user.Posts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NewNotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// updateStatus contains the core logic for overwriting the status field.
func (s *Storage) updateStatus(q Querier, id domain.UserId, status string) error {
	result, err := q.Exec("UPDATE users SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for status update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NewNotFound("User not found for status update")
	}
	return nil
}

// appendUserPost contains the core logic for growing the owner's post list.
func (s *Storage) appendUserPost(q Querier, userId domain.UserId, postId domain.PostId) error {
	result, err := q.Exec("UPDATE users SET posts = array_append(posts, $1) WHERE id = $2", postId, userId)
	if err != nil {
		return fmt.Errorf("failed to append post to user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post append: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NewNotFound("User not found for post append")
	}
	return nil
}

// removeUserPost contains the core logic for shrinking the owner's post list.
func (s *Storage) removeUserPost(q Querier, userId domain.UserId, postId domain.PostId) error {
	result, err := q.Exec("UPDATE users SET posts = array_remove(posts, $1) WHERE id = $2", postId, userId)
	if err != nil {
		return fmt.Errorf("failed to remove post from user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post removal: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NewNotFound("User not found for post removal")
	}
	return nil
}

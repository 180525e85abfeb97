package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feedline-dev/feedline/internal/domain"
	internal_errors "github.com/feedline-dev/feedline/internal/errors"
)

// SavePost inserts a new post and returns it with generated fields filled in.
func (s *Storage) SavePost(post domain.Post) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var saved domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.savePost(tx, post)
		return err
	})
	return saved, err
}

// Post fetches a single post by id.
func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	return s.post(s.db, id)
}

// Posts returns one feed page in insertion order plus the total post count.
func (s *Storage) Posts(limit, offset int) ([]domain.Post, int, error) {
	var total int
	err := s.db.QueryRow("SELECT count(*) FROM posts").Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	rows, err := s.db.Query(`
	SELECT id, title, content, image_path, creator_id, created_at, updated_at
	FROM posts
	ORDER BY id
	LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.Title, &p.Content, &p.ImagePath, &p.CreatorId, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, total, nil
}

// UpdatePost overwrites the mutable fields of a post. The creator reference
// is immutable and never touched here.
func (s *Storage) UpdatePost(post domain.Post) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updated domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		updated, err = s.updatePost(tx, post)
		return err
	})
	return updated, err
}

// DeletePost removes a single post record.
func (s *Storage) DeletePost(id domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deletePost(tx, id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) savePost(q Querier, post domain.Post) (domain.Post, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond
	err := q.QueryRow(`
	INSERT INTO posts(title, content, image_path, creator_id, created_at, updated_at)
	VALUES($1, $2, $3, $4, $5, $5)
	RETURNING id`,
		post.Title, post.Content, post.ImagePath, post.CreatorId, createdTs).Scan(&post.Id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	post.CreatedAt = createdTs
	post.UpdatedAt = createdTs
	return post, nil
}

func (s *Storage) post(q Querier, id domain.PostId) (domain.Post, error) {
	var p domain.Post
	err := q.QueryRow(`
	SELECT id, title, content, image_path, creator_id, created_at, updated_at
	FROM posts
	WHERE id = $1`, id).Scan(&p.Id, &p.Title, &p.Content, &p.ImagePath, &p.CreatorId, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NewNotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return p, nil
}

func (s *Storage) updatePost(q Querier, post domain.Post) (domain.Post, error) {
	updatedTs := time.Now().UTC().Round(time.Microsecond)
	result, err := q.Exec(`
	UPDATE posts
	SET title = $1, content = $2, image_path = $3, updated_at = $4
	WHERE id = $5`,
		post.Title, post.Content, post.ImagePath, updatedTs, post.Id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Post{}, internal_errors.NewNotFound("Post not found for update")
	}
	post.UpdatedAt = updatedTs
	return post, nil
}

func (s *Storage) deletePost(q Querier, id domain.PostId) error {
	result, err := q.Exec("DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NewNotFound("Post not found for deletion")
	}
	return nil
}

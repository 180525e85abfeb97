package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedline-dev/feedline/internal/domain"
	internal_errors "github.com/feedline-dev/feedline/internal/errors"
)

func TestSaveUser(t *testing.T) {
	id, err := storage.SaveUser(domain.User{Email: "test@example.com", Name: "Test", PassHash: "hash", Status: domain.DefaultStatus})
	require.NoError(t, err, "SaveUser should not return an error")
	assert.Greater(t, id, int64(0), "Expected ID > 0")

	_, err = storage.SaveUser(domain.User{Email: "test@example.com", Name: "Test", PassHash: "hash"})
	require.Error(t, err, "Saving user twice should return an error")
	assert.True(t, internal_errors.IsValidation(err), "duplicate email should map to a validation error")
}

func TestUser(t *testing.T) {
	id, err := storage.SaveUser(domain.User{Email: "testuser@example.com", Name: "Tester", PassHash: "hash", Status: domain.DefaultStatus})
	require.NoError(t, err)

	user, err := storage.User("testuser@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.Id)
	assert.Equal(t, "testuser@example.com", user.Email)
	assert.Equal(t, "Tester", user.Name)
	assert.Equal(t, "hash", user.PassHash)
	assert.Equal(t, domain.DefaultStatus, user.Status)
	assert.Empty(t, user.Posts)

	byId, err := storage.UserById(id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byId.Email)

	_, err = storage.User("nonexistent@example.com")
	require.Error(t, err, "Expected error for nonexistent user")
	assert.True(t, internal_errors.IsNotFound(err), "Expected status code 404")
}

func TestUpdateStatus(t *testing.T) {
	id, err := storage.SaveUser(domain.User{Email: "status@example.com", Name: "S", PassHash: "hash", Status: domain.DefaultStatus})
	require.NoError(t, err)

	require.NoError(t, storage.UpdateStatus(id, "Feeling great"))
	user, err := storage.UserById(id)
	require.NoError(t, err)
	assert.Equal(t, "Feeling great", user.Status)

	err = storage.UpdateStatus(9999999, "nope")
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestUserPostList(t *testing.T) {
	id, err := storage.SaveUser(domain.User{Email: "postlist@example.com", Name: "P", PassHash: "hash", Status: domain.DefaultStatus})
	require.NoError(t, err)

	first, err := storage.SavePost(domain.Post{Title: "a", Content: "a", ImagePath: "a.jpg", CreatorId: id})
	require.NoError(t, err)
	second, err := storage.SavePost(domain.Post{Title: "b", Content: "b", ImagePath: "b.jpg", CreatorId: id})
	require.NoError(t, err)

	require.NoError(t, storage.AppendUserPost(id, first.Id))
	require.NoError(t, storage.AppendUserPost(id, second.Id))

	user, err := storage.UserById(id)
	require.NoError(t, err)
	assert.Equal(t, domain.PostIds{first.Id, second.Id}, user.Posts, "post list keeps insertion order")

	require.NoError(t, storage.RemoveUserPost(id, first.Id))
	user, err = storage.UserById(id)
	require.NoError(t, err)
	assert.Equal(t, domain.PostIds{second.Id}, user.Posts)

	err = storage.AppendUserPost(9999999, first.Id)
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))
}

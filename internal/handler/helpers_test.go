package handler

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/feedline-dev/feedline/internal/config"
	"github.com/feedline-dev/feedline/internal/domain"
	"github.com/feedline-dev/feedline/internal/jwt"
	"github.com/feedline-dev/feedline/internal/middleware"
)

// --- Mocks ---

type MockAuthService struct {
	SignupFunc    func(email, name, password string) (domain.UserId, error)
	LoginFunc     func(email, password string) (string, domain.UserId, error)
	StatusFunc    func(userId domain.UserId) (string, error)
	SetStatusFunc func(userId domain.UserId, status string) (domain.User, error)
}

func (m *MockAuthService) Signup(email, name, password string) (domain.UserId, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(email, name, password)
	}
	return 1, nil
}

func (m *MockAuthService) Login(email, password string) (string, domain.UserId, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(email, password)
	}
	return "token", 1, nil
}

func (m *MockAuthService) Status(userId domain.UserId) (string, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(userId)
	}
	return domain.DefaultStatus, nil
}

func (m *MockAuthService) SetStatus(userId domain.UserId, status string) (domain.User, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(userId, status)
	}
	return domain.User{Id: userId, Status: status}, nil
}

type MockPostService struct {
	ListFunc   func(page int) (domain.PostPage, error)
	CreateFunc func(creatorId domain.UserId, title, content string, image *domain.PendingFile) (domain.Post, domain.Creator, error)
	GetFunc    func(id domain.PostId) (domain.Post, error)
	UpdateFunc func(id domain.PostId, requesterId domain.UserId, title, content string, newImage *domain.PendingFile, existingImagePath string) (domain.Post, error)
	DeleteFunc func(id domain.PostId, requesterId domain.UserId) error
}

func (m *MockPostService) List(page int) (domain.PostPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(page)
	}
	return domain.PostPage{}, nil
}

func (m *MockPostService) Create(creatorId domain.UserId, title, content string, image *domain.PendingFile) (domain.Post, domain.Creator, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(creatorId, title, content, image)
	}
	return domain.Post{Id: 1, Title: title, Content: content, CreatorId: creatorId}, domain.Creator{Id: creatorId}, nil
}

func (m *MockPostService) Get(id domain.PostId) (domain.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostService) Update(id domain.PostId, requesterId domain.UserId, title, content string, newImage *domain.PendingFile, existingImagePath string) (domain.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, requesterId, title, content, newImage, existingImagePath)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostService) Delete(id domain.PostId, requesterId domain.UserId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id, requesterId)
	}
	return nil
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- Test wiring ---

var testJwt = jwt.New("test-secret", time.Hour)

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		PostsPerPage:          2,
		AllowedImageMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	}}
}

func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/v1/auth/signup", h.Signup)
	r.Post("/v1/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NeedAuth(testJwt))
		r.Get("/v1/auth/status", h.GetStatus)
		r.Put("/v1/auth/status", h.UpdateStatus)
		r.Get("/v1/feed/posts", h.GetPosts)
		r.Post("/v1/feed/posts", h.CreatePost)
		r.Get("/v1/feed/posts/{postId}", h.GetPost)
		r.Put("/v1/feed/posts/{postId}", h.UpdatePost)
		r.Delete("/v1/feed/posts/{postId}", h.DeletePost)
	})
	return r
}

func createRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authorize(t *testing.T, req *http.Request, user domain.User) *http.Request {
	t.Helper()
	token, err := testJwt.NewToken(user)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func multipartPostBody(t *testing.T, title, content string, withImage bool, existingImagePath string) ([]byte, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", title))
	require.NoError(t, writer.WriteField("content", content))
	if existingImagePath != "" {
		require.NoError(t, writer.WriteField("image", existingImagePath))
	}
	if withImage {
		part, err := writer.CreateFormFile("image", "upload.png")
		require.NoError(t, err)
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		require.NoError(t, png.Encode(part, img))
	}
	require.NoError(t, writer.Close())
	return body.Bytes(), writer.FormDataContentType()
}

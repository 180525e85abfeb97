package service

import (
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/feedline-dev/feedline/internal/config"
	"github.com/feedline-dev/feedline/internal/domain"
	internal_errors "github.com/feedline-dev/feedline/internal/errors"
	"github.com/feedline-dev/feedline/internal/logger"
)

type PostService interface {
	List(page int) (domain.PostPage, error)
	Create(creatorId domain.UserId, title, content string, image *domain.PendingFile) (domain.Post, domain.Creator, error)
	Get(id domain.PostId) (domain.Post, error)
	Update(id domain.PostId, requesterId domain.UserId, title, content string, newImage *domain.PendingFile, existingImagePath string) (domain.Post, error)
	Delete(id domain.PostId, requesterId domain.UserId) error
}

type Post struct {
	storage   PostStorage
	users     UserStorage
	media     MediaStorage
	sanitizer *bluemonday.Policy
	cfg       *config.Public
}

type PostStorage interface {
	SavePost(post domain.Post) (domain.Post, error)
	Post(id domain.PostId) (domain.Post, error)
	Posts(limit, offset int) ([]domain.Post, int, error)
	UpdatePost(post domain.Post) (domain.Post, error)
	DeletePost(id domain.PostId) error
	AppendUserPost(userId domain.UserId, postId domain.PostId) error
	RemoveUserPost(userId domain.UserId, postId domain.PostId) error
}

type MediaStorage interface {
	// Save stores a file's content and returns the relative path
	// used as the post's image reference.
	Save(fileData io.Reader, originalFilename string) (string, error)

	// Delete removes a single stored file.
	Delete(filePath string) error
}

func NewPost(storage PostStorage, users UserStorage, media MediaStorage, cfg *config.Public) *Post {
	return &Post{storage, users, media, bluemonday.StrictPolicy(), cfg}
}

// List returns one feed page. Pages are 1-based; anything below 1 reads as
// the first page. Page size comes from config.
func (p *Post) List(page int) (domain.PostPage, error) {
	if page < 1 {
		page = 1
	}
	perPage := p.cfg.PostsPerPage

	posts, total, err := p.storage.Posts(perPage, (page-1)*perPage)
	if err != nil {
		return domain.PostPage{}, err
	}
	return domain.PostPage{Posts: posts, TotalItems: total}, nil
}

// Create stores the uploaded image, inserts the post and then appends the
// post id to the owner's post list. The two writes are a deliberate
// two-step sequence, post first; a failure in either step surfaces as one
// error. On an owner-update failure the orphaned post is removed best-effort.
func (p *Post) Create(creatorId domain.UserId, title, content string, image *domain.PendingFile) (domain.Post, domain.Creator, error) {
	if image == nil {
		return domain.Post{}, domain.Creator{}, internal_errors.NewValidation("No image provided.")
	}

	creator, err := p.users.UserById(creatorId)
	if err != nil {
		return domain.Post{}, domain.Creator{}, err
	}

	imagePath, err := p.media.Save(image.Data, image.Filename)
	if err != nil {
		return domain.Post{}, domain.Creator{}, err
	}

	post, err := p.storage.SavePost(domain.Post{
		Title:     p.sanitizer.Sanitize(title),
		Content:   p.sanitizer.Sanitize(content),
		ImagePath: imagePath,
		CreatorId: creatorId,
	})
	if err != nil {
		p.releaseImage(imagePath)
		return domain.Post{}, domain.Creator{}, err
	}

	if err := p.storage.AppendUserPost(creatorId, post.Id); err != nil {
		logger.Log.Error("post created but owner update failed, removing orphan", "post_id", post.Id, "user_id", creatorId, "error", err)
		if delErr := p.storage.DeletePost(post.Id); delErr != nil {
			logger.Log.Error("failed to remove orphaned post", "post_id", post.Id, "error", delErr)
		}
		p.releaseImage(imagePath)
		return domain.Post{}, domain.Creator{}, err
	}

	return post, domain.Creator{Id: creator.Id, Name: creator.Name}, nil
}

func (p *Post) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.Post(id)
}

// Update overwrites title, content and image reference, owner only. When the
// image reference changes the old stored file is released best-effort.
func (p *Post) Update(id domain.PostId, requesterId domain.UserId, title, content string, newImage *domain.PendingFile, existingImagePath string) (domain.Post, error) {
	post, err := p.storage.Post(id)
	if err != nil {
		return domain.Post{}, err
	}

	if post.CreatorId != requesterId {
		return domain.Post{}, internal_errors.NewForbidden("Not Authorized!")
	}

	imagePath := existingImagePath
	if newImage != nil {
		imagePath, err = p.media.Save(newImage.Data, newImage.Filename)
		if err != nil {
			return domain.Post{}, err
		}
	}
	if imagePath == "" {
		return domain.Post{}, internal_errors.NewValidation("No file picked!")
	}

	if imagePath != post.ImagePath {
		p.releaseImage(post.ImagePath)
	}

	post.Title = p.sanitizer.Sanitize(title)
	post.Content = p.sanitizer.Sanitize(content)
	post.ImagePath = imagePath

	return p.storage.UpdatePost(post)
}

// Delete removes the post, its stored image and the owner's back-reference.
// Image release is best-effort; the record deletions are ordered post first.
func (p *Post) Delete(id domain.PostId, requesterId domain.UserId) error {
	post, err := p.storage.Post(id)
	if err != nil {
		return err
	}

	if post.CreatorId != requesterId {
		return internal_errors.NewForbidden("Not Authorized!")
	}

	p.releaseImage(post.ImagePath)

	if err := p.storage.DeletePost(id); err != nil {
		return err
	}

	if err := p.storage.RemoveUserPost(post.CreatorId, id); err != nil {
		return err
	}

	return nil
}

// releaseImage is fire-and-log: a failure here never changes the outcome of
// the operation that triggered it.
func (p *Post) releaseImage(imagePath string) {
	if imagePath == "" {
		return
	}
	if err := p.media.Delete(imagePath); err != nil {
		logger.Log.Error("failed to release stored image", "image_path", imagePath, "error", err)
	}
}

package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/feedline-dev/feedline/internal/config"
	"github.com/feedline-dev/feedline/internal/domain"
	internal_errors "github.com/feedline-dev/feedline/internal/errors"
	"github.com/feedline-dev/feedline/internal/logger"
)

type AuthService interface {
	Signup(email, name string, password domain.Password) (domain.UserId, error)
	Login(email string, password domain.Password) (string, domain.UserId, error)
	Status(userId domain.UserId) (string, error)
	SetStatus(userId domain.UserId, status string) (domain.User, error)
}

type Auth struct {
	storage UserStorage
	jwt     Jwt
	cfg     *config.Public
}

type UserStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
	UpdateStatus(id domain.UserId, status string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage UserStorage, jwt Jwt, cfg *config.Public) *Auth {
	return &Auth{storage, jwt, cfg}
}

// Signup hashes the password and persists a new user. Field format checks
// happen upstream at the handler; email uniqueness is enforced by the store.
func (a *Auth) Signup(email, name string, password domain.Password) (domain.UserId, error) {
	email = strings.ToLower(email)

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), a.cfg.BcryptCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	id, err := a.storage.SaveUser(domain.User{
		Email:    email,
		Name:     name,
		PassHash: string(passHash),
		Status:   domain.DefaultStatus,
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Login checks credentials and returns an access token plus the user's id.
// Unknown email and wrong password both come back as 401 so the error kind
// never reveals which one happened.
func (a *Auth) Login(email string, password domain.Password) (string, domain.UserId, error) {
	email = strings.ToLower(email)

	user, err := a.storage.User(email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", 0, internal_errors.NewUnauthenticated("User does not exist!")
		}
		return "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		logger.Log.Info("password verification failed", "user_id", user.Id)
		return "", 0, internal_errors.NewUnauthenticated("Incorrect password!")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", 0, err
	}

	return token, user.Id, nil
}

// Status returns the current status line of an authenticated user.
func (a *Auth) Status(userId domain.UserId) (string, error) {
	user, err := a.storage.UserById(userId)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// SetStatus overwrites the status line and returns the updated user.
func (a *Auth) SetStatus(userId domain.UserId, status string) (domain.User, error) {
	user, err := a.storage.UserById(userId)
	if err != nil {
		return domain.User{}, err
	}

	if err := a.storage.UpdateStatus(userId, status); err != nil {
		return domain.User{}, err
	}

	user.Status = status
	return user, nil
}

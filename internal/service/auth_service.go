package service

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/storage"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// TokenIssuer is the part of TokenManager the account flows need.
type TokenIssuer interface {
	Issue(id int64, email string) (string, time.Time, error)
}

// AuthService coordinates registration, login and account management.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	hasher     auth.PasswordHasher
	files      FileStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     TokenIssuer
	Hasher     auth.PasswordHasher
	Files      FileStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		hasher:     deps.Hasher,
		files:      deps.Files,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Skills   []string
	Role     string
	Avatar   *multipart.FileHeader
	Resume   *multipart.FileHeader
}

// UpdateProfileInput carries optional profile changes; nil means unchanged.
type UpdateProfileInput struct {
	Name   *string
	Email  *string
	Skills []string
	Avatar *multipart.FileHeader
	Resume *multipart.FileHeader
}

// Session is the result of a successful register or login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates an account with its avatar and resume and signs the caller in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if in.Avatar == nil || in.Resume == nil {
		return nil, apperrors.NewBadRequest("Please upload both an avatar and a resume")
	}

	email := normalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role := domain.RoleApplicant
	if in.Role != "" {
		parsed, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, apperrors.NewBadRequest("Role must be applicant or admin")
		}
		role = parsed
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.files.Save(storage.KindAvatar, in.Avatar)
	if err != nil {
		return nil, uploadError(err, "avatar")
	}
	resumeURL, err := s.files.Save(storage.KindResume, in.Resume)
	if err != nil {
		s.files.Remove(avatarURL)
		return nil, uploadError(err, "resume")
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    avatarURL,
		Skills:       in.Skills,
		ResumeURL:    resumeURL,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.files.Remove(avatarURL)
		s.files.Remove(resumeURL)
		return nil, emailConflict(err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.session(user)
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewDomainError(apperrors.CodeNotFound, "User does not exist", http.StatusNotFound, nil)
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorized("Wrong password")
		}
		return nil, err
	}
	return s.session(user)
}

// ChangePassword verifies the current password before storing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword, confirmPassword string) error {
	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.NewUnauthorized("Old password is wrong")
		}
		return err
	}
	if newPassword != confirmPassword {
		return apperrors.NewBadRequest("New password and confirm password do not match")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return notFound(s.users.UpdatePassword(ctx, user.ID, hash), "User")
}

// UpdateProfile applies the provided fields and swaps uploaded files. Old files are removed
// only after the row was written.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, in UpdateProfileInput) (*domain.User, error) {
	updated := *user
	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		updated.Email = normalizeEmail(*in.Email)
		if updated.Email != user.Email {
			if other, err := s.users.GetByEmail(ctx, updated.Email); err == nil && other.ID != user.ID {
				return nil, emailConflict(repository.ErrEmailTaken)
			} else if err != nil && !isNoRows(err) {
				return nil, err
			}
		}
	}
	if in.Skills != nil {
		updated.Skills = in.Skills
	}

	var saved, replaced []string
	rollback := func() {
		for _, url := range saved {
			s.files.Remove(url)
		}
	}

	if in.Avatar != nil {
		url, err := s.files.Save(storage.KindAvatar, in.Avatar)
		if err != nil {
			return nil, uploadError(err, "avatar")
		}
		saved = append(saved, url)
		replaced = append(replaced, user.AvatarURL)
		updated.AvatarURL = url
	}
	if in.Resume != nil {
		url, err := s.files.Save(storage.KindResume, in.Resume)
		if err != nil {
			rollback()
			return nil, uploadError(err, "resume")
		}
		saved = append(saved, url)
		replaced = append(replaced, user.ResumeURL)
		updated.ResumeURL = url
	}

	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		rollback()
		return nil, emailConflict(notFound(err, "User"))
	}
	for _, url := range replaced {
		s.files.Remove(url)
	}
	return &updated, nil
}

// DeleteAccount removes the caller's own account after a password check.
func (s *AuthService) DeleteAccount(ctx context.Context, user *domain.User, password string) error {
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.NewBadRequest("Password does not match")
		}
		return err
	}
	return s.remove(ctx, user, user)
}

// ListUsers returns every account, newest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser loads one account.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// UpdateUserRole changes an account's role. The new role applies from the holder's next request.
func (s *AuthService) UpdateUserRole(ctx context.Context, id int64, rawRole string) (*domain.User, error) {
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return nil, apperrors.NewBadRequest("Role must be applicant or admin")
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, notFound(err, "User")
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes any account on behalf of an administrator.
func (s *AuthService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	target, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, actor, target)
}

func (s *AuthService) remove(ctx context.Context, actor, target *domain.User) error {
	if err := s.users.Delete(ctx, target.ID); err != nil {
		return notFound(err, "User")
	}
	s.files.Remove(target.AvatarURL)
	s.files.Remove(target.ResumeURL)

	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventAccountDeleted, actor.ID, target.ID, events.AccountDeletedPayload{
		Email:   target.Email,
		ByAdmin: actor.ID != target.ID,
	}))
	return nil
}

func (s *AuthService) session(user *domain.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailConflict reports a lost race on users.email as 409.
func emailConflict(err error) error {
	if errors.Is(err, repository.ErrEmailTaken) {
		return apperrors.NewConflict("Email already registered", nil)
	}
	return err
}

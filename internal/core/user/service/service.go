package userapp

import (
	"context"
	"time"

	"chirp/internal/core/apperr"
	followerEntity "chirp/internal/core/follower"
	tokenEntity "chirp/internal/core/token"
	tokenapp "chirp/internal/core/token/service"
	userEntity "chirp/internal/core/user"
	followerPort "chirp/internal/ports/follower"
	"chirp/internal/ports/limiter"
	"chirp/internal/ports/mail"
	userPort "chirp/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const resendWindow = time.Minute

// UserService covers profile, follow graph, email verification and the
// password flows.
type UserService struct {
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
	Tokens             *tokenapp.TokenService
	Mailer             mail.Mailer
	Cooldown           limiter.Cooldown
	Logger             *zap.Logger
}

func NewUserService(
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	tokens *tokenapp.TokenService,
	mailer mail.Mailer,
	cooldown limiter.Cooldown,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		UserRepository:     userRepo,
		FollowerRepository: followerRepo,
		Tokens:             tokens,
		Mailer:             mailer,
		Cooldown:           cooldown,
		Logger:             logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*userPort.ProfileDTO, error) {
	u, err := s.mustFindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileDTO(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, body *userPort.UpdateProfileDTO) (*userPort.ProfileDTO, error) {
	fields := map[string]any{}
	if body.Name != nil {
		fields["name"] = *body.Name
	}
	if body.DateOfBirth != nil {
		fields["date_of_birth"] = *body.DateOfBirth
	}
	if body.Bio != nil {
		fields["bio"] = *body.Bio
	}
	if body.Location != nil {
		fields["location"] = *body.Location
	}
	if body.Website != nil {
		fields["website"] = *body.Website
	}
	if body.Username != nil {
		fields["username"] = *body.Username
	}
	if body.Avatar != nil {
		fields["avatar"] = *body.Avatar
	}
	if body.CoverPhoto != nil {
		fields["cover_photo"] = *body.CoverPhoto
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, userID)
	}
	u, err := s.UserRepository.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return profileDTO(u), nil
}

func (s *UserService) GetUserInfo(ctx context.Context, username string) (*userPort.PublicUserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return &userPort.PublicUserDTO{
		ID:         u.ID.String(),
		Name:       u.Name,
		Username:   u.Username,
		Bio:        u.Bio,
		Location:   u.Location,
		Website:    u.Website,
		Avatar:     u.Avatar,
		CoverPhoto: u.CoverPhoto,
	}, nil
}

// Follow is idempotent: following an already-followed user succeeds
// without a second edge.
func (s *UserService) Follow(ctx context.Context, userID, followedUserID string) error {
	if userID == followedUserID {
		return apperr.BadRequest("Cannot follow yourself")
	}
	if _, err := s.mustFindByID(ctx, followedUserID); err != nil {
		return err
	}
	exists, err := s.FollowerRepository.Exists(ctx, userID, followedUserID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	edge := &followerEntity.Follower{
		ID:             uuid.Must(uuid.NewV4()),
		UserID:         uuid.FromStringOrNil(userID),
		FollowedUserID: uuid.FromStringOrNil(followedUserID),
	}
	_, err = s.FollowerRepository.Follow(ctx, edge)
	return err
}

func (s *UserService) Unfollow(ctx context.Context, userID, followedUserID string) error {
	exists, err := s.FollowerRepository.Exists(ctx, userID, followedUserID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.BadRequest("Already unfollowed")
	}
	return s.FollowerRepository.Unfollow(ctx, userID, followedUserID)
}

// VerifyEmail consumes the single-use verify token. Verifying an already
// verified account is a no-op reported to the caller.
func (s *UserService) VerifyEmail(ctx context.Context, tokenStr string) (alreadyVerified bool, err error) {
	claims, err := s.Tokens.Verify(tokenStr, tokenEntity.EmailVerify)
	if err != nil {
		return false, err
	}
	u, err := s.mustFindByID(ctx, claims.UserID)
	if err != nil {
		return false, err
	}
	if u.Verify == userEntity.Verified {
		return true, nil
	}
	if u.EmailVerifyToken != tokenStr {
		return false, apperr.Unauthorized("Email verify token is invalid")
	}
	_, err = s.UserRepository.Update(ctx, claims.UserID, map[string]any{
		"email_verify_token": "",
		"verify":             userEntity.Verified,
	})
	return false, err
}

func (s *UserService) SendVerifyEmail(ctx context.Context, userID string) error {
	u, err := s.mustFindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Verify == userEntity.Verified {
		return apperr.BadRequest("Email already verified before")
	}
	if err := s.acquireResendWindow(ctx, "verify-email:"+userID); err != nil {
		return err
	}
	tok, err := s.Tokens.IssueEmailVerifyToken(userID)
	if err != nil {
		return err
	}
	if _, err := s.UserRepository.Update(ctx, userID, map[string]any{"email_verify_token": tok}); err != nil {
		return err
	}
	return s.Mailer.SendVerifyEmail(ctx, u.Email, tok)
}

func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("User not found")
	}
	if err := s.acquireResendWindow(ctx, "forgot-password:"+u.ID.String()); err != nil {
		return err
	}
	tok, err := s.Tokens.IssueForgotPasswordToken(u.ID.String())
	if err != nil {
		return err
	}
	if _, err := s.UserRepository.Update(ctx, u.ID.String(), map[string]any{"forgot_password_token": tok}); err != nil {
		return err
	}
	return s.Mailer.SendForgotPasswordEmail(ctx, u.Email, tok)
}

// ResetPassword requires the presented token to match the stored one, and
// consumes it.
func (s *UserService) ResetPassword(ctx context.Context, tokenStr, password string) error {
	claims, err := s.Tokens.Verify(tokenStr, tokenEntity.ForgotPassword)
	if err != nil {
		return err
	}
	u, err := s.UserRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if u == nil || u.ForgotPasswordToken != tokenStr {
		return apperr.BadRequest("User not found or forgot password token is invalid")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.UserRepository.Update(ctx, claims.UserID, map[string]any{
		"password":              string(hashed),
		"forgot_password_token": "",
	})
	return err
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.mustFindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return apperr.BadRequest("Old password not match")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.UserRepository.Update(ctx, userID, map[string]any{"password": string(hashed)})
	return err
}

func (s *UserService) acquireResendWindow(ctx context.Context, key string) error {
	ok, err := s.Cooldown.Acquire(ctx, key, resendWindow)
	if err != nil {
		return err
	}
	if !ok {
		s.Logger.Warn("resend window still open", zap.String("key", key))
		return apperr.BadRequest("Please wait 1 minute before sending another email")
	}
	return nil
}

func (s *UserService) mustFindByID(ctx context.Context, userID string) (*userEntity.User, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

func profileDTO(u *userEntity.User) *userPort.ProfileDTO {
	return &userPort.ProfileDTO{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Username:    u.Username,
		DateOfBirth: u.DateOfBirth,
		Verify:      int(u.Verify),
		Bio:         u.Bio,
		Location:    u.Location,
		Website:     u.Website,
		Avatar:      u.Avatar,
		CoverPhoto:  u.CoverPhoto,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

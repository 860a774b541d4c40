package httpapi

import (
	"time"

	"chirp/internal/core/apperr"
	userPort "chirp/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) GetProfile(c *gin.Context) {
	profile, err := ctl.uc.GetProfile(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Get profile successful!", profile)
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		DateOfBirth *string `json:"date_of_birth"`
		Bio         *string `json:"bio"`
		Location    *string `json:"location"`
		Website     *string `json:"website"`
		Username    *string `json:"username"`
		Avatar      *string `json:"avatar"`
		CoverPhoto  *string `json:"cover_photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid input"))
		return
	}

	body := &userPort.UpdateProfileDTO{
		Name:       req.Name,
		Bio:        req.Bio,
		Location:   req.Location,
		Website:    req.Website,
		Username:   req.Username,
		Avatar:     req.Avatar,
		CoverPhoto: req.CoverPhoto,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(time.RFC3339, *req.DateOfBirth)
		if err != nil {
			fail(c, apperr.UnprocessableEntity("Validation error", map[string]string{
				"date_of_birth": "Date of birth is invalid",
			}))
			return
		}
		body.DateOfBirth = &dob
	}

	profile, err := ctl.uc.UpdateProfile(c.Request.Context(), callerID(c), body)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Update profile successful!", profile)
}

func (ctl *UserController) GetUserInfo(c *gin.Context) {
	info, err := ctl.uc.GetUserInfo(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Get user info successful!", info)
}

func (ctl *UserController) Follow(c *gin.Context) {
	var req struct {
		FollowedUserID string `json:"followed_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("Followed user id is required"))
		return
	}
	if err := ctl.uc.Follow(c.Request.Context(), callerID(c), req.FollowedUserID); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Follow successful!", true)
}

func (ctl *UserController) Unfollow(c *gin.Context) {
	if err := ctl.uc.Unfollow(c.Request.Context(), callerID(c), c.Param("user_id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Unfollow successful!", true)
}

func (ctl *UserController) VerifyEmail(c *gin.Context) {
	var req struct {
		EmailVerifyToken string `json:"email_verify_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Unauthorized("Email verify token is required"))
		return
	}
	already, err := ctl.uc.VerifyEmail(c.Request.Context(), req.EmailVerifyToken)
	if err != nil {
		fail(c, err)
		return
	}
	if already {
		ok(c, "Email already verified before", true)
		return
	}
	ok(c, "Verify email successful!", true)
}

func (ctl *UserController) SendVerifyEmail(c *gin.Context) {
	if err := ctl.uc.SendVerifyEmail(c.Request.Context(), callerID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Send verify email successful!", true)
}

func (ctl *UserController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("Email is required"))
		return
	}
	if err := ctl.uc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Check email to reset password", true)
}

func (ctl *UserController) ResetPassword(c *gin.Context) {
	var req struct {
		ForgotPasswordToken string `json:"forgot_password_token"`
		Password            string `json:"password"`
		ConfirmPassword     string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid input"))
		return
	}
	if fields := passwordFields(req.Password, req.ConfirmPassword); len(fields) > 0 {
		fail(c, apperr.UnprocessableEntity("Validation error", fields))
		return
	}
	if req.ForgotPasswordToken == "" {
		fail(c, apperr.Unauthorized("Forgot password token is required"))
		return
	}
	if err := ctl.uc.ResetPassword(c.Request.Context(), req.ForgotPasswordToken, req.Password); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Reset password successful!", true)
}

func (ctl *UserController) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword     string `json:"old_password"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid input"))
		return
	}
	fields := passwordFields(req.Password, req.ConfirmPassword)
	if req.OldPassword == "" {
		fields["old_password"] = "Old password is required"
	}
	if len(fields) > 0 {
		fail(c, apperr.UnprocessableEntity("Validation error", fields))
		return
	}
	if err := ctl.uc.ChangePassword(c.Request.Context(), callerID(c), req.OldPassword, req.Password); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Change password successful!", true)
}

func passwordFields(password, confirm string) map[string]string {
	fields := map[string]string{}
	if password == "" {
		fields["password"] = "Password is required"
	} else if !isStrongPassword(password) {
		fields["password"] = "Password must be at least 6 characters, 1 lowercase, 1 uppercase, 1 number, 1 symbol"
	}
	if confirm != password {
		fields["confirm_password"] = "Password confirmation does not match password"
	}
	return fields
}

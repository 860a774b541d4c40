package httpapi

import (
	"regexp"
	"time"
	"unicode"

	"chirp/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthController struct{ ac AuthUseCase }

func NewAuthController(ac AuthUseCase) *AuthController { return &AuthController{ac: ac} }

func (ctl *AuthController) Register(c *gin.Context) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		DateOfBirth     string `json:"date_of_birth"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid input"))
		return
	}

	// Field errors are aggregated into one 422, not failed fast.
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "Name is required"
	} else if len(req.Name) > 255 {
		fields["name"] = "Name must be between 1 and 255 characters"
	}
	switch {
	case req.Email == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(req.Email) || len(req.Email) < 6 || len(req.Email) > 255:
		fields["email"] = "Email is invalid"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	} else if !isStrongPassword(req.Password) {
		fields["password"] = "Password must be at least 6 characters, 1 lowercase, 1 uppercase, 1 number, 1 symbol"
	}
	if req.ConfirmPassword != req.Password {
		fields["confirm_password"] = "Password confirmation does not match password"
	}
	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		dob, err := time.Parse(time.RFC3339, req.DateOfBirth)
		if err != nil {
			fields["date_of_birth"] = "Date of birth is invalid"
		} else {
			dateOfBirth = &dob
		}
	}

	// Uniqueness is checked before any write happens.
	if _, ok := fields["email"]; !ok {
		exists, err := ctl.ac.CheckEmailExists(c.Request.Context(), req.Email)
		if err != nil {
			fail(c, err)
			return
		}
		if exists {
			fields["email"] = "Email already exists"
		}
	}

	if len(fields) > 0 {
		fail(c, apperr.UnprocessableEntity("Validation error", fields))
		return
	}

	pair, err := ctl.ac.Register(c.Request.Context(), req.Name, req.Email, req.Password, dateOfBirth)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Registration successful!", pair)
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("Email and password are required"))
		return
	}
	pair, err := ctl.ac.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Login successful!", pair)
}

func (ctl *AuthController) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Unauthorized("Refresh token is required"))
		return
	}
	if err := ctl.ac.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Logout successful!", true)
}

func (ctl *AuthController) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Unauthorized("Refresh token is required"))
		return
	}
	pair, err := ctl.ac.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Refresh token successful!", pair)
}

func (ctl *AuthController) OAuthGoogle(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("Code is required"))
		return
	}
	pair, err := ctl.ac.OAuthGoogle(c.Request.Context(), req.Code)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Login successful!", pair)
}

func isStrongPassword(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

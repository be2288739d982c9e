package auth

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type RegisterInput struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	Phone          string `json:"phone" binding:"required"`
	SecondaryPhone string `json:"secondary_phone"`
	Address        string `json:"address" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// -------- Core Logic --------

// Register creates a user with a bcrypt-hashed password. The plaintext is
// never persisted or logged, and the returned user never carries the hash.
func Register(db *gorm.DB, input RegisterInput) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("email")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if input.Role != "" {
		role = models.Role(input.Role)
	}

	user := models.User{
		Name:           input.Name,
		Email:          input.Email,
		Password:       string(hash),
		Role:           role,
		Phone:          input.Phone,
		SecondaryPhone: input.SecondaryPhone,
		Address:        input.Address,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func Login(db *gorm.DB, email, password string) (*models.User, *TokenPair, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrUnauthorized
	}

	pair, err := GenerateTokens(db, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// -------- Handlers --------

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, int(RefreshTokenTTL.Seconds()), "/", "", secureCookies(), true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", secureCookies(), true)
}

// POST /auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		user, err := Register(db, input)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "User created successfully", user)
	}
}

// POST /auth/login — access token in the body, refresh token only in the
// HTTP-only cookie.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		_, pair, err := Login(db, input.Email, input.Password)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		setRefreshCookie(c, pair.RefreshToken)
		httpx.OK(c, "Login successful", gin.H{"accessToken": pair.AccessToken})
	}
}

// GET /auth/refresh — rotates the cookie-carried refresh token.
func RefreshHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(RefreshCookieName)
		if err != nil || token == "" {
			httpx.Error(c, apperrors.ErrUnauthorized)
			return
		}

		pair, err := Refresh(db, token)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		setRefreshCookie(c, pair.RefreshToken)
		httpx.OK(c, "Token refreshed successfully", gin.H{"accessToken": pair.AccessToken})
	}
}

// POST /auth/logout — requires a valid access token; clears the stored
// refresh record and the cookie.
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := Logout(db, userID); err != nil {
			httpx.Error(c, err)
			return
		}
		clearRefreshCookie(c)
		httpx.OK(c, "Logged out successfully", nil)
	}
}

package auth

import (
	"crypto/sha256"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

const (
	// Access tokens authorize individual API calls; refresh tokens are
	// exchanged for new pairs and rotated on every use.
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 60 * 24 * time.Hour

	RefreshCookieName = "refreshToken"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Distinct secrets: compromise of the access secret must not allow
// minting refresh tokens, and vice versa.
func accessSecret() []byte  { return []byte(os.Getenv("JWT_SECRET")) }
func refreshSecret() []byte { return []byte(os.Getenv("JWT_REFRESH_SECRET")) }

func signToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		// jti makes every issued token distinct even within the same
		// second, so rotation can tell a superseded token apart.
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return t.SignedString(secret)
}

// hashToken prepares a refresh JWT for bcrypt. The JWT is far longer than
// bcrypt's 72-byte input limit, so the token is reduced to a sha256 digest
// first; bcrypt then supplies the salt and cost factor.
func hashToken(token string) ([]byte, error) {
	digest := sha256.Sum256([]byte(token))
	return bcrypt.GenerateFromPassword(digest[:], bcrypt.DefaultCost)
}

func compareToken(hashed, token string) error {
	digest := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hashed), digest[:])
}

// GenerateTokens issues a signed access/refresh pair for the user and
// persists the bcrypt-hashed refresh token, overwriting any existing
// record in place. Issuing a new pair therefore invalidates every
// previously issued refresh token for that user.
func GenerateTokens(db *gorm.DB, user *models.User) (*TokenPair, error) {
	accessToken, err := signToken(user, accessSecret(), AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := signToken(user, refreshSecret(), RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	hashed, err := hashToken(refreshToken)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(RefreshTokenTTL)

	var existing models.RefreshToken
	err = db.Where("user_id = ?", user.ID).First(&existing).Error
	switch {
	case err == nil:
		existing.Token = string(hashed)
		existing.ExpiresAt = expiresAt
		if err := db.Save(&existing).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.RefreshToken{
			UserID:    user.ID,
			Token:     string(hashed),
			ExpiresAt: expiresAt,
		}
		if createErr := db.Create(&record).Error; createErr != nil {
			// A concurrent first issuance may have won the unique index
			// on user_id; overwrite the winner's record instead.
			var winner models.RefreshToken
			if err := db.Where("user_id = ?", user.ID).First(&winner).Error; err != nil {
				return nil, createErr
			}
			winner.Token = string(hashed)
			winner.ExpiresAt = expiresAt
			if err := db.Save(&winner).Error; err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh validates a presented refresh token and rotates it: a new pair
// is issued and the stored hash overwritten. Tokens superseded by a later
// login or refresh fail the hash comparison here, independent of expiry.
func Refresh(db *gorm.DB, presented string) (*TokenPair, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(presented, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return refreshSecret(), nil
	})
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var stored models.RefreshToken
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrUnauthorized
	}
	if err := compareToken(stored.Token, presented); err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	return GenerateTokens(db, &user)
}

// Logout deletes the user's refresh-token records. Idempotent: logging
// out twice, or without a live record, is not an error.
func Logout(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

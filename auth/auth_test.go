package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One pooled connection, or every connection sees its own :memory: DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))
	return db
}

func registerUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := Register(db, RegisterInput{
		Name:     "Amina Rahman",
		Email:    email,
		Password: "correct-horse-battery",
		Phone:    "555-0100",
		Address:  "12 Main St",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "amina@example.com")

	require.NotEmpty(t, user.ID)
	require.Equal(t, models.RoleUser, user.Role)
	require.NotEqual(t, "correct-horse-battery", user.Password)
	require.True(t, strings.HasPrefix(user.Password, "$2"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "amina@example.com")

	_, err := Register(db, RegisterInput{
		Name:     "Other",
		Email:    "amina@example.com",
		Password: "another-password",
		Phone:    "555-0101",
		Address:  "34 Side St",
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLoginUnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "amina@example.com")

	_, _, errUnknown := Login(db, "nobody@example.com", "whatever")
	_, _, errWrong := Login(db, "amina@example.com", "not-the-password")
	require.ErrorIs(t, errUnknown, apperrors.ErrUnauthorized)
	require.ErrorIs(t, errWrong, apperrors.ErrUnauthorized)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLoginIssuesTokenPair(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "amina@example.com")

	user, pair, err := Login(db, "amina@example.com", "correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// Access token carries subject, email and role and verifies against
	// the access secret only.
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(pair.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, claims["sub"])
	require.Equal(t, "amina@example.com", claims["email"])
	require.Equal(t, "USER", claims["role"])

	_, err = jwt.Parse(pair.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	})
	require.Error(t, err, "refresh token must not verify against the access secret")

	// The stored record holds a hash, never the token itself.
	var record models.RefreshToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)
	require.NotEqual(t, pair.RefreshToken, record.Token)
	require.NotContains(t, record.Token, ".")
}

func TestSecondLoginInvalidatesFirstRefreshToken(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "amina@example.com")

	_, first, err := Login(db, "amina@example.com", "correct-horse-battery")
	require.NoError(t, err)
	_, second, err := Login(db, "amina@example.com", "correct-horse-battery")
	require.NoError(t, err)

	// Still a single record per user.
	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	_, err = Refresh(db, first.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = Refresh(db, second.RefreshToken)
	require.NoError(t, err)
}

func TestBackToBackIssuanceYieldsDistinctTokens(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "amina@example.com")

	// Both pairs land within the same second. The tokens must still
	// differ, or the superseded one would keep matching the stored hash.
	first, err := GenerateTokens(db, user)
	require.NoError(t, err)
	second, err := GenerateTokens(db, user)
	require.NoError(t, err)

	require.NotEqual(t, first.AccessToken, second.AccessToken)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = Refresh(db, first.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = Refresh(db, second.RefreshToken)
	require.NoError(t, err)
}

func TestGenerateTokensFirstIssuanceRace(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "amina@example.com")

	// A concurrent login slips its record in between the lookup and the
	// insert, taking the unique user_id slot.
	injected := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("inject_refresh", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.RefreshToken); !ok || injected {
			return
		}
		injected = true
		rival := models.RefreshToken{
			UserID:    user.ID,
			Token:     "rival-hash",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tx.Session(&gorm.Session{NewDB: true}).Create(&rival)
	}))
	defer db.Callback().Create().Remove("inject_refresh")

	pair, err := GenerateTokens(db, user)
	require.NoError(t, err)
	require.True(t, injected)

	// The losing insert overwrote the rival record instead of failing:
	// still one record per user, honouring the returned token.
	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	_, err = Refresh(db, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRotates(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "amina@example.com")

	_, pair, err := Login(db, "amina@example.com", "correct-horse-battery")
	require.NoError(t, err)

	rotated, err := Refresh(db, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The superseded token is dead; the rotated one works.
	_, err = Refresh(db, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = Refresh(db, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "amina@example.com")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-refresh-secret"))
	require.NoError(t, err)

	_, err = Refresh(db, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshRejectsTamperedSignature(t *testing.T) {
	db := newTestDB(t)
	registerUser(t, db, "amina@example.com")

	_, pair, err := Login(db, "amina@example.com", "correct-horse-battery")
	require.NoError(t, err)

	tampered := pair.RefreshToken[:len(pair.RefreshToken)-2] + "xx"
	_, err = Refresh(db, tampered)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogoutKillsRefreshAndIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "amina@example.com")

	_, pair, err := Login(db, "amina@example.com", "correct-horse-battery")
	require.NoError(t, err)

	require.NoError(t, Logout(db, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)

	_, err = Refresh(db, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Logging out twice is not an error.
	require.NoError(t, Logout(db, user.ID))
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	internalErrors "github.com/frahmantamala/employee-management/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Account is the domain view of a login account. The password hash is
// never serialized.
type Account struct {
	ID           int64  `json:"id"`
	Sno          int64  `json:"sno"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
}

// AccountView is the public shape returned after login/registration.
type AccountView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (a *Account) ToView() AccountView {
	return AccountView{ID: a.ID, Username: a.Username}
}

// LoginResponse is the identity assertion returned on successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  AccountView `json:"user"`
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResponse, error)
	Register(dto RegisterDTO) (*Account, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetAccount(claims *Claims) (*Account, error)
}

type RepositoryAPI interface {
	GetByUsername(username string) (*Account, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	NextSequenceNumber() (int64, error)
	Create(a *Account) error
}

// Claims carries the identity assertion payload: user id, username and
// the issue/expiry times from RegisteredClaims.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenGeneratorAPI interface {
	GenerateToken(userID, username string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs HS256 tokens with a fixed expiry window.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateToken(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// The auth sentinels are the shared taxonomy errors so every layer
// reports the same code and status for a given failure.
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so responses cannot be used for username enumeration.
	ErrInvalidCredentials = internalErrors.ErrInvalidCredentials
	ErrAlreadyExists      = internalErrors.ErrAlreadyExists
	ErrInvalidToken       = internalErrors.ErrInvalidToken
	ErrTokenExpired       = internalErrors.ErrTokenExpired
)

// HashPassword produces a salted bcrypt digest. The salt is regenerated
// on every call, so equal plaintexts never share a digest.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword recomputes with the salt and cost embedded in the
// digest and compares in constant time. Malformed digests return an
// error, never panic.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

type ctxKey string

// ContextUserKey holds the authenticated *Account in request context.
const ContextUserKey ctxKey = "authUser"

func UserFromContext(ctx context.Context) (*Account, bool) {
	a, ok := ctx.Value(ContextUserKey).(*Account)
	return a, ok
}

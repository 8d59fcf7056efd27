package utils_auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

type Claims struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

const (
	ARGON2_TIME       = uint32(1)
	ARGON2_MEMORY     = uint32(64 * 1024)
	ARGON2_THREADS    = uint8(2)
	ARGON2_KEYLENGTH  = uint32(32)
	ARGON2_SALTLENGTH = uint32(16)

	JWT_DEFAULT_EXPIRATION = 7 * 24 * time.Hour
)

var (
	ErrInvalidHash  = errors.New("invalid argon2 hash format")
	ErrInvalidToken = errors.New("invalid token")
)

var hashPattern = regexp.MustCompile(fmt.Sprintf(
	`^\$argon2id\$v=%d\$m=(\d+),t=(\d+),p=(\d+)\$([A-Za-z0-9+/]+)\$([A-Za-z0-9+/]+)$`,
	argon2.Version))

// formatHash takes in a salt and Argon2hash of a password in bytes,
// and returns a string containig the cost parameter used to generate the hash,
// as well as the base64-encoded hash and salt for storage.
func formatHash(salt []byte, hashedPassword []byte) string {
	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHashedPassword := base64.RawStdEncoding.EncodeToString(hashedPassword)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		uint32(argon2.Version),
		ARGON2_MEMORY,
		ARGON2_TIME,
		ARGON2_THREADS,
		encodedSalt,
		encodedHashedPassword,
	)
}

type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	hash    []byte
}

// parsePasswordHashStdForm reads the cost parameters, salt and hash back out
// of the standard representation.
func parsePasswordHashStdForm(passwordHash string) (*hashParams, error) {
	matches := hashPattern.FindStringSubmatch(passwordHash)
	if matches == nil {
		return nil, ErrInvalidHash
	}

	mem, err := strconv.ParseUint(matches[1], 10, 32)
	if err != nil {
		return nil, ErrInvalidHash
	}
	t, err := strconv.ParseUint(matches[2], 10, 32)
	if err != nil {
		return nil, ErrInvalidHash
	}
	threads, err := strconv.ParseUint(matches[3], 10, 8)
	if err != nil {
		return nil, ErrInvalidHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(matches[4])
	if err != nil {
		return nil, ErrInvalidHash
	}
	hash, err := base64.RawStdEncoding.DecodeString(matches[5])
	if err != nil {
		return nil, ErrInvalidHash
	}

	return &hashParams{
		memory:  uint32(mem),
		time:    uint32(t),
		threads: uint8(threads),
		salt:    salt,
		hash:    hash,
	}, nil
}

func generateArgon2Salt() ([]byte, error) {
	salt := make([]byte, ARGON2_SALTLENGTH)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "generating salt")
	}
	return salt, nil
}

// GenerateArgon2Hash returns the Argon2id hash of payload with a fresh salt,
// in the standard string format.
func GenerateArgon2Hash(payload string) (string, error) {
	salt, err := generateArgon2Salt()
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(payload), salt, ARGON2_TIME, ARGON2_MEMORY, ARGON2_THREADS, ARGON2_KEYLENGTH)
	return formatHash(salt, hash), nil
}

// VerifyArgon2Hash checks payload against a hash produced by
// GenerateArgon2Hash, using the cost parameters stored in the hash.
func VerifyArgon2Hash(payload string, storedHash string) bool {
	params, err := parsePasswordHashStdForm(storedHash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(payload), params.salt, params.time, params.memory, params.threads,
		uint32(len(params.hash)))
	return subtle.ConstantTimeCompare(computed, params.hash) == 1
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = JWT_DEFAULT_EXPIRATION
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	now := t.now().UTC()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseAccessToken validates signature, algorithm and expiry.
func (t *TokenIssuer) ParseAccessToken(accessToken string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ConfirmClaims is the payload of a delete confirmation token.
type ConfirmClaims struct {
	TaskID int64 `json:"task_id"`
	jwt.RegisteredClaims
}

// ConfirmIssuer signs and verifies short-lived delete confirmation tokens.
type ConfirmIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewConfirmIssuer(secret string, ttl time.Duration) *ConfirmIssuer {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ConfirmIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for deleting taskID together with its claims.
func (i *ConfirmIssuer) Issue(taskID int64) (string, ConfirmClaims, error) {
	now := i.now()
	claims := ConfirmClaims{
		TaskID: taskID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "task-delete",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", ConfirmClaims{}, err
	}
	return signed, claims, nil
}

// Parse verifies signature and expiry.
func (i *ConfirmIssuer) Parse(tokenString string) (ConfirmClaims, error) {
	var claims ConfirmClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return ConfirmClaims{}, ErrInvalidConfirmation
	}
	if claims.Subject != "task-delete" || claims.ID == "" {
		return ConfirmClaims{}, ErrInvalidConfirmation
	}
	return claims, nil
}

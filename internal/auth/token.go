package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokens(secret string) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: 72 * time.Hour}
}

func (t *Tokens) Sign(id int64, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(t.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

type Claims struct {
	ID    int64
	Email string
	Role  string
}

func (t *Tokens) Parse(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.Secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return Claims{}, apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Claims{ID: int64(sub), Email: email, Role: role}, nil
}

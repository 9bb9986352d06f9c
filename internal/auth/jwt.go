package auth

import (
	"fmt"
	"time"

	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the principal attached to every authenticated request. It carries
// the identity subset the controllers need so no user lookup happens per
// request.
type Claims struct {
	UserID     uint   `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	StaffType  string `json:"staffType"`
	Department string `json:"department"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for the given user. If expiration <= 0, 24h is
// used.
func GenerateJWT(secret string, u *models.User, expiration time.Duration) (string, error) {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	claims := Claims{
		UserID:     u.ID,
		Email:      u.Email,
		Role:       u.Role,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		StaffType:  u.StaffType,
		Department: u.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "bienestar-escolar",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(secret string, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

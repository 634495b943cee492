package auth

import (
	"fmt"
	"time"

	"github.com/Daskott/folio/server/auth/key"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	TOKEN_ISSUER   = "folio"
	TOKEN_LIFETIME = 24 * time.Hour
	BCRYPT_COST    = 12
)

type FolioTokenClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.StandardClaims
}

// NewOwnerClaims returns admin claims for the site owner, valid for TOKEN_LIFETIME from 'now'.
func NewOwnerClaims(name, email string, now time.Time) FolioTokenClaims {
	return FolioTokenClaims{
		Name:    name,
		Email:   email,
		IsAdmin: true,
		StandardClaims: jwt.StandardClaims{
			Subject:   email,
			Issuer:    TOKEN_ISSUER,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TOKEN_LIFETIME).Unix(),
		},
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BCRYPT_COST)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func EncodeJWT(claims FolioTokenClaims, keyPair *key.KeyPair) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = keyPair.Kid

	tokenString, err := token.SignedString(keyPair.PrivateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeJWT(tokenString string, keyPair *key.KeyPair) (*FolioTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &FolioTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return keyPair.PublicKey, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*FolioTokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to FolioTokenClaims")
	}

	return tokenClaims, nil
}

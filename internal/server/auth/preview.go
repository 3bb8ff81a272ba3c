package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ppandzharov/blogadmin/internal/common"
)

// PreviewClaims carries the post a signed preview link grants access to.
type PreviewClaims struct {
	jwt.RegisteredClaims
	PostID string
}

// GeneratePreviewToken signs a short-lived token that lets a draft post be
// viewed without an admin session.
func GeneratePreviewToken(postID string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, PreviewClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		PostID: postID,
	})

	return token.SignedString(secret)
}

// PostIDFromPreviewToken validates a preview token and returns the post it
// was issued for. Expired or tampered tokens yield ErrInvalidPreviewToken.
func PostIDFromPreviewToken(tokenString string, secret []byte) (string, error) {
	claims := &PreviewClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", common.ErrInvalidPreviewToken
	}

	if !token.Valid {
		return "", common.ErrInvalidPreviewToken
	}

	return claims.PostID, nil
}

package tenant

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types accepted by tokens.token_type.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Token is the one model without the dual-identifier pair. Its primary key
// is the credential's own identity claim (the JWT jti), because lookups must
// match the identifier embedded in the external credential.
type Token struct {
	TokenID  string    `gorm:"type:varchar(255);primaryKey;column:token_id" json:"token_id"`
	UserUUID uuid.UUID `gorm:"type:uuid;not null;column:user_uuid;index:idx_tokens_user_uuid" json:"user_uuid"`
	User     *User     `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`

	TokenType string     `gorm:"type:varchar(20);not null;default:'access';column:token_type;check:tokens_valid_token_type,token_type IN ('access','refresh')" json:"token_type"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
}

func (Token) TableName() string { return "tokens" }

var errMissingJTI = errors.New("credential has no jti claim")

// TokenFromJWT builds a Token row from a serialized JWT without verifying
// its signature; verification is the caller's concern. The jti claim becomes
// the primary key so the stored row always matches the credential.
func TokenFromJWT(raw string, userUUID uuid.UUID, tokenType string) (*Token, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errMissingJTI
	}
	t := &Token{
		TokenID:   claims.ID,
		UserUUID:  userUUID,
		TokenType: tokenType,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		t.ExpiresAt = &exp
	}
	return t, nil
}

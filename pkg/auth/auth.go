// Package auth 提供密码哈希和 JWT 令牌的签发与校验。
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Encrypt 使用默认 cost 对明文密码做 bcrypt 哈希。
func Encrypt(source string) (string, error) {
	return EncryptWithCost(source, 0)
}

// EncryptWithCost cost 超出 bcrypt 允许范围时取边界值，<=0 时使用默认值。
func EncryptWithCost(source string, cost int) (string, error) {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(source), cost)
	return string(hashedBytes), err
}

// Compare compares the encrypted text with the plain text if it's the same.
func Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Sign 签发 HS256 令牌，sub 为用户 ID。
// orig_iat 供刷新接口计算最大可刷新时间。
func Sign(subject, secretKey, issuer string, timeout time.Duration) (string, time.Time, error) {
	now := time.Now()
	expire := now.Add(timeout)
	claims := jwt.MapClaims{
		"sub":      subject,
		"iss":      issuer,
		"iat":      now.Unix(),
		"orig_iat": now.Unix(),
		"exp":      expire.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expire, nil
}

// Parse 校验签名算法、签名与过期时间，返回令牌中的 sub。
func Parse(tokenString, secretKey string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return sub, nil
}

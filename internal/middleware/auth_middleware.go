package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Gin context keys set by AuthMiddleware.
const (
	KeyUserID     = "user_id"
	KeyEmployeeID = "employee_id"
	KeyCompanyID  = "company_id"
	KeyRole       = "role"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New(apperror.CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware validates an HS256 bearer token (or the access_token cookie)
// and copies its identity claims onto the gin and request contexts.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Abort(c, ErrTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Abort(c, ErrTokenExpired)
				return
			}
			response.Abort(c, ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, ErrInvalidToken)
			return
		}

		for _, key := range []string{KeyUserID, KeyCompanyID, KeyEmployeeID} {
			v, ok := claims[key].(string)
			if !ok || v == "" {
				response.Abort(c, ErrInvalidToken.WithDetails(key+" claim is missing"))
				return
			}
			c.Set(key, v)
		}
		role, _ := claims[KeyRole].(string)
		c.Set(KeyRole, role)

		ctx := contextutil.WithUserID(c.Request.Context(), c.GetString(KeyEmployeeID))
		ctx = contextutil.WithCompanyID(ctx, c.GetString(KeyCompanyID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Actor returns the authenticated company and employee.
func Actor(c *gin.Context) (companyID, employeeID string) {
	return c.GetString(KeyCompanyID), c.GetString(KeyEmployeeID)
}

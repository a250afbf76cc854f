package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/pkg/helpers"
	"github.com/oksasatya/go-identity-backend/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
	CtxClaims    = "claims"
)

// Auth validates the access token from the Authorization header or the
// access_token cookie. Refresh tokens are rejected. It sets userID, userName,
// userEmail and claims in the Gin context on success.
func Auth(tokens port.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if ck, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
				token = ck
			}
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}

		claims, err := tokens.Decode(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		if claims.String(port.ClaimType) != port.TokenTypeAccess {
			response.Abort(c, http.StatusUnauthorized, "not an access token", nil)
			return
		}
		if claims.String(port.ClaimID) == "" {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		c.Set(CtxUserID, claims.String(port.ClaimID))
		c.Set(CtxUserName, claims.String(port.ClaimUsername))
		c.Set(CtxUserEmail, claims.String(port.ClaimEmail))
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

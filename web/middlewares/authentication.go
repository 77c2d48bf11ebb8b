package middlewares

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

const sessionCookie = "warehouse.SessionToken"

func parseJwt(tokenStr string, jwtSecret []byte) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
}

// Authentication checks for a valid Bearer token or session cookie. The
// secret arrives base64-encoded, matching how tokens are minted.
func Authentication(base64Secret string) gin.HandlerFunc {
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		secret = []byte(base64Secret)
	}

	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie(sessionCookie)
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		token, err := parseJwt(tokenStr, secret)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set("claims", claims)
		}

		c.Next()
	}
}

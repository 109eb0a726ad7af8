package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig builds the gin-contrib/cors settings.
// enforce=false の場合、許可リスト外のオリジンも警告ログを出した上で許可します。
func CORSConfig(allowed []string, enforce bool, log *slog.Logger) cors.Config {
	if log == nil {
		log = slog.Default()
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := set[origin]; ok {
				return true
			}
			if enforce {
				log.Warn("cors origin rejected", "origin", origin)
				return false
			}
			log.Warn("cors origin not in allow list; allowing", "origin", origin)
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS returns the middleware for CORSConfig.
func CORS(allowed []string, enforce bool, log *slog.Logger) gin.HandlerFunc {
	return cors.New(CORSConfig(allowed, enforce, log))
}

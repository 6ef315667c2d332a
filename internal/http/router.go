package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/metrics"
)

// RouterOptions agrupa lo que el router necesita de la configuración.
type RouterOptions struct {
	AllowedOrigins []string
	TrustedProxies []string
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	opts RouterOptions,
	contactH *ContactHandler,
	adminH *AdminHandler,
	tokens TokenParser,
) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, using remote address", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// CORS va antes de cualquier ruta para que OPTIONS nunca llegue a la lógica.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), securityHeadersMiddleware(), corsMiddleware(opts.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend is running")
	})
	// Los contadores de login y tráfico no son públicos.
	r.GET("/metrics", AdminAuthMiddleware(tokens), gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.POST("/contact", contactH.Submit)
	api.POST("/admin/login", adminH.Login)
	api.GET("/submissions", AdminAuthMiddleware(tokens), adminH.ListSubmissions)

	return r
}

package i

import "github.com/gin-gonic/gin"

// Controller registers its routes on the router's public and run-protected groups.
type Controller interface {
	// RegisterPublic adds routes reachable without a run token.
	RegisterPublic(*gin.RouterGroup)

	// RegisterProtected adds routes behind the run token middleware.
	RegisterProtected(*gin.RouterGroup)
}

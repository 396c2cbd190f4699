package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/idea-validator/validator-api/config"
)

func SetGinMode(env string) {
	if env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
}

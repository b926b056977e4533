package main

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/allape/openspin/config"
	"github.com/gin-gonic/gin"
)

//go:embed ui/index.html
var IndexHTML []byte

// SetupUI serves the viewer page, a file at conf.UI.Path wins over the embedded one.
func SetupUI(router gin.IRoutes, conf config.Config) {
	index := func(context *gin.Context) {
		if conf.UI.Path != "" {
			if stat, err := os.Stat(conf.UI.Path); err == nil && !stat.IsDir() {
				context.File(conf.UI.Path)
				return
			}
			l.Warn().Println("ui file not found, fallback to embedded page:", conf.UI.Path)
		}
		context.Data(http.StatusOK, "text/html; charset=utf-8", IndexHTML)
	}

	router.GET("/", index)
	router.GET("/index.html", index)
}

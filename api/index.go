// Package handler exposes the API as a single serverless function. The
// container is built once per instance and reused across invocations.
package handler

import (
	"net/http"
	"staybook/config"
	"staybook/di"
	"staybook/shared/logger"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.Init(config.Get())

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	app.ServeHTTP(w, r)
}

package main

import (
	"staybook/config"
	"staybook/di"
	"staybook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	worker := di.InitializeWorker()
	worker.Serve()
}

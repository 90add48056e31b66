package main

import (
	"os"
	"staybook/config"
	"staybook/helper"
	"staybook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: migrate up|down|step-up|drop")
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

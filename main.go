package main

import (
	"github.com/stockguard/damage_service/config"
	"github.com/stockguard/damage_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}

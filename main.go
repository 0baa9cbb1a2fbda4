package main

import (
	"go-interview-crm/core/logger"
	"go-interview-crm/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}

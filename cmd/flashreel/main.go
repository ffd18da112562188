package main

import (
	"os"

	"github.com/vytor/flashreel/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Default().Error("%v", err)
		os.Exit(1)
	}
}

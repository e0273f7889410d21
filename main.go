package main

import (
	"context"
	"os"

	logger "github.com/Easy-Infra-Ltd/easy-logger"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/cli"
)

func main() {
	log := logger.CreateLoggerFromEnv(nil, "blue").With("process", "svgscanner")

	os.Exit(cli.Execute(context.Background(), log))
}

// Command lambda runs the web forms relay behind API Gateway.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/eyetechsecurities/webforms/internal/app"
	"github.com/eyetechsecurities/webforms/pkg/lambdaproxy"
	"github.com/eyetechsecurities/webforms/pkg/logger"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		logger.New().Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := app.NewLogger(cfg, os.Stdout)
	logger.SetAsDefault(log)

	h, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to build app", logger.Error(err))
		os.Exit(1)
	}

	lambda.Start(lambdaproxy.New(h, lambdaproxy.WithLogger(log)).Handle)
}

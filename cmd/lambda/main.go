package main

import (
	"context"

	"study-buddy-be/internal/bootstrap"
	"study-buddy-be/internal/config"
	"study-buddy-be/internal/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"
)

var adapter *fiberadapter.FiberLambda

func init() {
	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	srv := server.New(cfg, container)
	adapter = fiberadapter.New(srv.GetApp())
}

// handler proxies the API Gateway event through the same Fiber app the
// local server runs.
func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}

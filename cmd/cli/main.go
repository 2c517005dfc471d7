package main

import (
	"context"
	"flag"

	"github.com/authgate/authgate/internal/client/api"
	"github.com/authgate/authgate/internal/client/cli"
)

func main() {
	serverAddr := flag.String("a", "http://localhost:8080", "authgate server base URL")
	flag.Parse()

	app := cli.NewApp(api.NewClient(*serverAddr))
	app.Run(context.Background())
}

package main

import (
	"github.com/aspecthq/aspect/internal/app"
	"github.com/aspecthq/aspect/internal/config"
)

func main() {
	app.Go(config.Load())
}

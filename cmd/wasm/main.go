//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"contact-service/common/logger"
	"contact-service/internal/form"
)

// endpoint can be overridden at build time:
//
//	GOOS=js GOARCH=wasm go build -ldflags="-X 'main.endpoint=https://example.com/prod/contact'"
var endpoint = form.DefaultEndpoint

func main() {
	log := logger.NewWithOptions(logger.Options{Format: "json"})

	release, err := form.BindDOM(context.Background(), js.Global().Get("document"), form.NewClient(endpoint, nil), log)
	if err != nil {
		log.Error("failed to bind contact form", "error", err)
		return
	}
	defer release()

	select {}
}

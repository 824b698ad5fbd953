package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drstein77/shopcart/internal/app"
)

func main() {
	const shutdownTimeout = 5 * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	server, err := app.NewServer(ctx)
	if err != nil {
		log.Fatalln(err)
	}

	go func() {
		sig := <-signalCh
		server.Log.Info(fmt.Sprintf("Received signal: %+v", sig))

		server.Shutdown(shutdownTimeout)
		cancel()
	}()

	if err := server.Serve(); err != nil {
		server.Shutdown(shutdownTimeout)
		os.Exit(1)
	}
	<-ctx.Done()
}

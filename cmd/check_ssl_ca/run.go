// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/cli"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/logger"
	verpkg "github.com/ARGOeu-Metrics/argo-probe-igtf/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	log := logger.NewCLILogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)

	// A completed probe exits with the monitoring-plugin code from
	// inside Execute; this path only sees command-line failures.
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("UNKNOWN: %v", err)
			os.Exit(3)
		}
	case <-ctx.Done():
		log.Println("UNKNOWN: probe cancelled by signal")
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		os.Exit(3)
	}
}

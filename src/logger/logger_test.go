// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/logger"
	"github.com/stretchr/testify/assert"
)

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("test message: %s", "hello")

				output := buf.String()
				assert.Contains(t, output, "test message: hello", "expected output to contain 'test message: hello'")
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("test", "message")

				output := buf.String()
				assert.Contains(t, output, "test message", "expected output to contain 'test message'")
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Contains(t, buf1.String(), "first", "expected buf1 to contain 'first'")
				assert.Contains(t, buf2.String(), "second", "expected buf2 to contain 'second'")
				assert.NotContains(t, buf1.String(), "second", "buf1 should not contain 'second'")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestDebugLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "SilentByDefault",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewDebugLogger()
				log.SetOutput(&buf)

				log.Printf("hidden %s", "message")
				log.Println("also hidden")

				assert.Empty(t, buf.String(), "disabled debug logger should produce no output")
			},
		},
		{
			name: "EnabledOutput",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewDebugLogger()
				log.SetOutput(&buf)
				log.SetEnabled(true)

				log.Printf("fetched %d sources", 3)

				assert.Contains(t, buf.String(), "fetched 3 sources", "expected diagnostic output when enabled")
			},
		},
		{
			name: "ToggleBackOff",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewDebugLogger()
				log.SetOutput(&buf)

				log.SetEnabled(true)
				log.Println("visible")
				log.SetEnabled(false)
				log.Println("invisible")

				output := buf.String()
				assert.Contains(t, output, "visible", "expected output while enabled")
				assert.NotContains(t, strings.ReplaceAll(output, "visible", ""), "invisible", "no output after disabling")
			},
		},
		{
			name: "ConcurrentUsage",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewDebugLogger()
				log.SetOutput(&buf)
				log.SetEnabled(true)

				var wg sync.WaitGroup
				for i := 0; i < 10; i++ {
					wg.Add(1)
					go func(n int) {
						defer wg.Done()
						log.Printf("goroutine %d", n)
					}(i)
				}
				wg.Wait()

				assert.NotEmpty(t, buf.String(), "expected output from concurrent goroutines")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command httpspin drives the streaming parser over a file or stdin, one
// chunk at a time, and prints the parsed messages. It exists to exercise
// the engine end to end and is not part of the library's public surface.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/packetloop/httpparse"
	"github.com/packetloop/httpparse/internal/collect"
)

var (
	mode      string
	chunkSize int
	skipBody  bool
	chunked   bool
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "httpspin [file]",
		Short: "Parse an HTTP/1.x byte stream and print the messages found",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	cmd.Flags().StringVar(&mode, "mode", "either", "grammar to accept: request, response or either")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "bytes read from the input per read before feeding Parse (0 or less means 1 MiB)")
	cmd.Flags().BoolVar(&skipBody, "skip-body", false, "treat the first message as having no body (e.g. a response to HEAD)")
	cmd.Flags().BoolVar(&chunked, "chunked", false, "decode Transfer-Encoding: chunked bodies instead of leaving them raw")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log the consumed/remaining byte counts of every Parse call")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := logr.New(stdr.New(log.New(os.Stderr, "", log.LstdFlags)))
	if !verbose {
		logger = logr.Discard()
	}

	m, err := parseMode(mode)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	var p *httpparse.Parser
	if chunked {
		p = httpparse.NewParserWithChunkedBodies(m)
	} else {
		p = httpparse.NewParser(m)
	}
	p.SetSkipBodyNext(skipBody)

	h := &collect.Handler{}
	br := bufio.NewReader(r)
	buf := make([]byte, chunkSizeOrDefault())

	var pending []byte
	for {
		n, readErr := br.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for len(pending) > 0 {
				consumed, perr := p.Parse(h, pending)
				if perr != nil {
					return fmt.Errorf("parse: %w", perr)
				}
				logger.Info("parsed", "consumed", consumed, "remaining", len(pending)-consumed)
				if consumed == 0 {
					break
				}
				pending = pending[consumed:]
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}
	if err := p.Finish(h); err != nil {
		return fmt.Errorf("finish: %w", err)
	}

	for i, msg := range h.Messages {
		printMessage(i, msg)
	}
	return nil
}

func printMessage(i int, msg *collect.Message) {
	if msg.Request {
		fmt.Printf("[%d] %s %s %s\n", i, msg.Method, msg.URL(), msg.Version)
	} else {
		fmt.Printf("[%d] %s %d\n", i, msg.Version, msg.StatusCode)
	}
	for j := range msg.Headers {
		fmt.Printf("    %s: %s\n", msg.HeaderName(j), msg.HeaderValue(j))
	}
	fmt.Printf("    body: %d byte(s), keep-alive=%v upgrade=%v complete=%v\n",
		len(msg.Body), msg.ShouldKeepAlive, msg.ShouldUpgrade, msg.Complete)
}

func chunkSizeOrDefault() int {
	if chunkSize <= 0 {
		return 1 << 20
	}
	return chunkSize
}

func parseMode(s string) (httpparse.Mode, error) {
	switch s {
	case "request":
		return httpparse.Request, nil
	case "response":
		return httpparse.Response, nil
	case "either":
		return httpparse.Either, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want request, response or either)", s)
	}
}

package ipc

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/frostyard/forgeexec/internal/runner"
)

const (
	// InitRetries and InitInterval give a freshly spawned program three
	// seconds to start listening.
	InitRetries  = 300
	InitInterval = 10 * time.Millisecond

	// DefaultTerminateMessage is sent when terminate is called without a message.
	DefaultTerminateMessage = "termination"
)

// SocketName returns the socket path used for the given id.
func SocketName(id uint32) string {
	return fmt.Sprintf("/tmp/app.world-%d", id)
}

// Init starts program with args plus a trailing "ipc:<socket>" argument,
// waits until it accepts connections and returns the socket name ABI-encoded
// as a 0x-prefixed hex string, ready for forge to decode.
func Init(ctx context.Context, r runner.Runner, c *Client, program string, args []string) (string, error) {
	path, err := r.LookPath(program)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", program, err)
	}

	name := SocketName(rand.Uint32())
	argv := append(append([]string{}, args...), "ipc:"+name)
	c.Logger.Debug("spawning", "program", path, "socket", name)
	if err := r.RunBackground(path, argv...); err != nil {
		return "", fmt.Errorf("start %s: %w", program, err)
	}

	waiter := *c
	waiter.Retries = InitRetries
	waiter.Interval = InitInterval
	conn, err := waiter.Dial(ctx, name)
	if err != nil {
		return "", err
	}
	conn.Close()

	return "0x" + hex.EncodeToString(EncodeString(name)), nil
}

// Exec forwards data as a response to the program's previous request and
// returns the program's next request.
func Exec(ctx context.Context, c *Client, name, data string) (string, error) {
	return c.Send(ctx, name, "response:"+data)
}

// Terminate tells the program forge is done, with an optional error message.
// The reply is ignored.
func Terminate(ctx context.Context, c *Client, name, message string) error {
	if message == "" {
		message = DefaultTerminateMessage
	}
	_, err := c.Send(ctx, name, "terminate:"+message)
	return err
}

// Connect waits for the program's socket to accept a connection.
func Connect(ctx context.Context, c *Client, name string) error {
	waiter := *c
	waiter.Retries = InitRetries
	waiter.Interval = InitInterval
	conn, err := waiter.Dial(ctx, name)
	if err != nil {
		return err
	}
	return conn.Close()
}

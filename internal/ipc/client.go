// Package ipc is the client side of the forge-exec bridge. Forge runs it once
// per cheatcode call; it relays messages to a long-running program over a
// local socket, one newline-terminated request and reply per connection.
package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Client dials the program's socket.
type Client struct {
	// Retries is the number of extra dial attempts after the first fails.
	Retries  int
	Interval time.Duration
	Logger   *log.Logger
}

func NewClient(logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{Interval: 10 * time.Millisecond, Logger: logger}
}

// Dial connects to the socket at name, retrying every Interval.
func (c *Client) Dial(ctx context.Context, name string) (net.Conn, error) {
	var d net.Dialer
	for attempt := 0; ; attempt++ {
		conn, err := d.DialContext(ctx, "unix", name)
		if err == nil {
			c.Logger.Debug("connected", "socket", name, "attempts", attempt+1)
			return conn, nil
		}
		if attempt >= c.Retries {
			return nil, fmt.Errorf("connect to %s: %w", name, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Interval):
		}
	}
}

// Send writes msg followed by a newline and returns the reply line without
// its newline.
func (c *Client) Send(ctx context.Context, name, msg string) (string, error) {
	conn, err := c.Dial(ctx, name)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return "", fmt.Errorf("set deadline on %s: %w", name, err)
		}
	}

	if _, err := io.WriteString(conn, msg+"\n"); err != nil {
		return "", fmt.Errorf("send to %s: %w", name, err)
	}

	// A peer may close without replying; that reads as an empty reply.
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("receive from %s: %w", name, err)
	}
	c.Logger.Debug("reply", "socket", name, "bytes", len(reply))
	return strings.TrimSuffix(reply, "\n"), nil
}

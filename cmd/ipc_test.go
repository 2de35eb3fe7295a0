package cmd

import (
	"bufio"
	"net"
	"path/filepath"
	"testing"
)

func serveOnce(t *testing.T, reply string) (string, <-chan string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(got)
			return
		}
		defer conn.Close()
		line, _ := bufio.NewReader(conn).ReadString('\n')
		got <- line
		if reply != "" {
			conn.Write([]byte(reply))
		}
	}()
	return path, got
}

func TestIPCExec(t *testing.T) {
	path, got := serveOnce(t, "0xnext\n")

	stdout, _, err := execute(t, "ipc", "exec", path, "0x01")
	if err != nil {
		t.Fatalf("ipc exec error: %v", err)
	}
	if stdout != "0xnext" {
		t.Errorf("stdout = %q, want %q", stdout, "0xnext")
	}
	if req := <-got; req != "response:0x01\n" {
		t.Errorf("request = %q", req)
	}
}

func TestIPCTerminate(t *testing.T) {
	path, got := serveOnce(t, "bye\n")

	stdout, _, err := execute(t, "ipc", "terminate", path)
	if err != nil {
		t.Fatalf("ipc terminate error: %v", err)
	}
	if stdout != "0x" {
		t.Errorf("stdout = %q, want %q", stdout, "0x")
	}
	if req := <-got; req != "terminate:termination\n" {
		t.Errorf("request = %q", req)
	}
}

func TestIPCExecArgs(t *testing.T) {
	if _, _, err := execute(t, "ipc", "exec", "only-one-arg"); err == nil {
		t.Error("expected error for wrong argument count")
	}
}

func TestIPCTerminatePeerClosesWithoutReply(t *testing.T) {
	path, got := serveOnce(t, "")

	stdout, _, err := execute(t, "ipc", "terminate", path, "done")
	if err != nil {
		t.Fatalf("ipc terminate error: %v", err)
	}
	if stdout != "0x" {
		t.Errorf("stdout = %q, want %q", stdout, "0x")
	}
	if req := <-got; req != "terminate:done\n" {
		t.Errorf("request = %q", req)
	}
}

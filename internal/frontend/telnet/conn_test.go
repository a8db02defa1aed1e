package telnet

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// pipe returns a Conn over one end of an in-memory connection and the raw
// client end.
func pipe(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return NewConn(server, 0, 0), client
}

// send writes data from the client side and closes it.
func send(client net.Conn, data []byte) {
	go func() {
		_, _ = client.Write(data)
		client.Close()
	}()
}

func readAll(t *testing.T, c *Conn) string {
	t.Helper()
	out, err := io.ReadAll(c)
	require.NoError(t, err)
	return string(out)
}

func TestConnRead_PlainText(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte("look\r\n"))
	assert.Equal(t, "look\n", readAll(t, c))
}

func TestConnRead_StopsAtNewline(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte("a 1\r\nmove top\r\n"))

	buf := make([]byte, 64)
	n, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "a 1\n", string(buf[:n]))
	assert.Equal(t, "move top\n", readAll(t, c))
}

func TestConnRead_StripsNegotiation(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte{IAC, WILL, OptEcho, 'h', IAC, DO, OptSuppressGoAhead, 'i', '\n'})
	assert.Equal(t, "hi\n", readAll(t, c))
}

func TestConnRead_StripsSubNegotiation(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte{IAC, SB, 24, 0, 'x', 't', 'e', 'r', 'm', IAC, SE, 'z', '\n'})
	assert.Equal(t, "z\n", readAll(t, c))
}

func TestConnRead_DropsEscapedIACAndNOP(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte{'a', IAC, IAC, 'b', IAC, NOP, 'c', '\n'})
	assert.Equal(t, "abc\n", readAll(t, c))
}

func TestConnRead_DropsControlCharacters(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte("s\x07k\x1bi\tl\r\n"))
	assert.Equal(t, "ski\tl\n", readAll(t, c))
}

func TestConnRead_EOF(t *testing.T) {
	c, client := pipe(t)
	client.Close()
	_, err := c.Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.EOF)
}

func TestConnRead_TruncatedCommandAtEOF(t *testing.T) {
	c, client := pipe(t)
	send(client, []byte{'o', 'k', IAC, SB, 24})
	assert.Equal(t, "ok", readAll(t, c))
}

func TestConnWrite_TranslatesNewlines(t *testing.T) {
	c, client := pipe(t)

	done := make(chan struct{})
	var got []byte
	go func() {
		defer close(done)
		got = make([]byte, len("a\r\nb\r\n"))
		_, _ = io.ReadFull(client, got)
	}()

	n, err := c.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("client did not receive output")
	}
	assert.Equal(t, "a\r\nb\r\n", string(got))
}

func TestConnNegotiate(t *testing.T) {
	c, client := pipe(t)

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 3)
		_, _ = io.ReadFull(client, buf)
		got <- buf
	}()

	require.NoError(t, c.Negotiate())
	assert.Equal(t, []byte{IAC, WILL, OptSuppressGoAhead}, <-got)
}

func TestPropertyConnRead_TextPassesThrough(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-z0-9 ]{0,40}`).Draw(t, "line")

		server, client := net.Pipe()
		defer server.Close()
		send(client, []byte(line+"\r\n"))

		out, err := io.ReadAll(NewConn(server, 0, 0))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(out) != line+"\n" {
			t.Fatalf("got %q, want %q", out, line+"\n")
		}
	})
}

func TestPropertyConnRead_OutputHasNoControlBytes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOfN(rapid.Byte(), 1, 200).Draw(t, "input")

		server, client := net.Pipe()
		defer server.Close()
		send(client, input)

		out, err := io.ReadAll(NewConn(server, 0, 0))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if len(out) > len(input) {
			t.Fatalf("output longer than input: %d > %d", len(out), len(input))
		}
		if bytes.IndexByte(out, IAC) >= 0 {
			t.Fatalf("IAC byte in output %v", out)
		}
		for _, b := range out {
			if b < 32 && b != '\t' && b != '\n' {
				t.Fatalf("control byte %d in output", b)
			}
		}
	})
}

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Transport is the message transport contract used by the server core.
type Transport interface {
	Send(ctx context.Context, message Message) error
	Receive(ctx context.Context) (Message, error)
	Close(ctx context.Context) error
}

// StdioTransport implements the server side of a stdio MCP session:
// JSON-RPC messages are decoded from the input stream and written
// newline-delimited to the output stream. The output stream must carry
// protocol traffic only; logging belongs on stderr.
type StdioTransport struct {
	mu     sync.Mutex
	out    io.Writer
	recvCh chan Message
	errCh  chan error
	closed bool
}

// NewStdioTransport starts a transport over the given streams and begins
// decoding incoming messages immediately.
func NewStdioTransport(in io.Reader, out io.Writer) *StdioTransport {
	t := &StdioTransport{
		out:    out,
		recvCh: make(chan Message, 64),
		errCh:  make(chan error, 1),
	}
	go t.readLoop(in)
	return t
}

func (t *StdioTransport) readLoop(in io.Reader) {
	decoder := json.NewDecoder(bufio.NewReader(in))
	for {
		var message Message
		if err := decoder.Decode(&message); err != nil {
			if errors.Is(err, io.EOF) {
				t.sendErr(io.EOF)
				return
			}
			t.sendErr(fmt.Errorf("mcp: stdio decode request: %w", err))
			return
		}
		select {
		case t.recvCh <- message:
		default:
			t.sendErr(errors.New("mcp: stdio receive queue is full"))
			return
		}
	}
}

// Send writes a JSON-RPC message to the output stream.
func (t *StdioTransport) Send(ctx context.Context, message Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("mcp: stdio transport is closed")
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("mcp: encode response: %w", err)
	}
	data = append(data, '\n')

	if _, err := t.out.Write(data); err != nil {
		return fmt.Errorf("mcp: write response: %w", err)
	}
	return nil
}

// Receive returns the next decoded message. It returns io.EOF when the
// input stream ends.
func (t *StdioTransport) Receive(ctx context.Context) (Message, error) {
	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case message := <-t.recvCh:
		return message, nil
	case err := <-t.errCh:
		// Drain buffered messages before surfacing the terminal error.
		select {
		case message := <-t.recvCh:
			t.sendErr(err)
			return message, nil
		default:
			return Message{}, err
		}
	}
}

// Close marks the transport closed. The input stream is owned by the
// caller (process stdin) and is not closed here.
func (t *StdioTransport) Close(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *StdioTransport) sendErr(err error) {
	select {
	case t.errCh <- err:
	default:
	}
}

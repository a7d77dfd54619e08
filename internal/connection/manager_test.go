package connection

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/avcontrol/lyngdorf/internal/protocol"
)

// pipeDialer hands out the client end of a net.Pipe and keeps the server
// end for the test.
type pipeDialer struct {
	server chan net.Conn
}

func newPipeDialer() *pipeDialer {
	return &pipeDialer{server: make(chan net.Conn, 1)}
}

func (d *pipeDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	client, server := net.Pipe()
	d.server <- server
	return client, nil
}

// blockingDialer blocks until released, to exercise disconnect-while-connecting.
type blockingDialer struct {
	release chan struct{}
	dialed  chan struct{}
}

func (d *blockingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	close(d.dialed)
	<-d.release
	client, _ := net.Pipe()
	return client, nil
}

func waitFrames(t *testing.T, ch <-chan protocol.Frame, n int) []protocol.Frame {
	t.Helper()
	var out []protocol.Frame
	for len(out) < n {
		select {
		case f := <-ch:
			out = append(out, f)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for frame %d of %d", len(out)+1, n)
		}
	}
	return out
}

func TestConnectAndReceive(t *testing.T) {
	dialer := newPipeDialer()
	frames := make(chan protocol.Frame, 16)
	m := New("device:84", dialer, nil, Handlers{
		OnFrame: func(f protocol.Frame) { frames <- f },
	})

	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer m.Disconnect()

	if got := m.State(); got != Connected {
		t.Fatalf("state = %s, want connected", got)
	}

	server := <-dialer.server
	go server.Write([]byte("!VOL(-450)\r!MUTE(1)\r"))

	got := waitFrames(t, frames, 2)
	if got[0].Mnemonic != "VOL" || got[0].Param != "-450" {
		t.Errorf("first frame = %+v", got[0])
	}
	if got[1].Mnemonic != "MUTE" || got[1].Param != "1" {
		t.Errorf("second frame = %+v", got[1])
	}
}

func TestConnectTwice(t *testing.T) {
	dialer := newPipeDialer()
	m := New("device:84", dialer, nil, Handlers{})

	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer m.Disconnect()

	if err := m.Connect(context.Background()); !errors.Is(err, ErrAlreadyConnected) {
		t.Fatalf("second Connect = %v, want ErrAlreadyConnected", err)
	}
}

func TestSendRequiresConnection(t *testing.T) {
	m := New("device:84", newPipeDialer(), nil, Handlers{})
	if err := m.Send(protocol.Query("VOL")); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Send = %v, want ErrNotConnected", err)
	}
}

func TestSendReachesDevice(t *testing.T) {
	dialer := newPipeDialer()
	m := New("device:84", dialer, nil, Handlers{})
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer m.Disconnect()

	server := <-dialer.server
	read := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		read <- string(buf[:n])
	}()

	if err := m.Send(protocol.Command("VOL", "-450")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case got := <-read:
		if got != "!VOL(-450)\r" {
			t.Errorf("device received %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("device never received the command")
	}
}

func TestDisconnectStopsReader(t *testing.T) {
	dialer := newPipeDialer()
	lost := make(chan error, 1)
	m := New("device:84", dialer, nil, Handlers{
		OnConnectionLost: func(err error) { lost <- err },
	})
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	<-dialer.server

	m.Disconnect()

	if got := m.State(); got != Disconnected {
		t.Fatalf("state = %s, want disconnected", got)
	}
	if err := m.Send([]byte("x")); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Send after Disconnect = %v, want ErrNotConnected", err)
	}
	select {
	case err := <-lost:
		t.Fatalf("OnConnectionLost fired for deliberate disconnect: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectionLost(t *testing.T) {
	dialer := newPipeDialer()
	lost := make(chan error, 1)
	m := New("device:84", dialer, nil, Handlers{
		OnConnectionLost: func(err error) { lost <- err },
	})
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	server := <-dialer.server
	server.Close()

	select {
	case <-lost:
	case <-time.After(time.Second):
		t.Fatal("OnConnectionLost never fired")
	}
	if got := m.State(); got != Disconnected {
		t.Fatalf("state after loss = %s, want disconnected", got)
	}
}

func TestDisconnectWhileConnecting(t *testing.T) {
	dialer := &blockingDialer{
		release: make(chan struct{}),
		dialed:  make(chan struct{}),
	}
	m := New("device:84", dialer, nil, Handlers{})

	result := make(chan error, 1)
	go func() { result <- m.Connect(context.Background()) }()

	<-dialer.dialed
	m.Disconnect()
	close(dialer.release)

	select {
	case err := <-result:
		if !errors.Is(err, ErrNotConnected) {
			t.Fatalf("Connect = %v, want ErrNotConnected", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Connect never returned")
	}
	if got := m.State(); got != Disconnected {
		t.Fatalf("state = %s, want disconnected", got)
	}
}

func TestDecodeErrorIsReported(t *testing.T) {
	dialer := newPipeDialer()
	decodeErrs := make(chan error, 1)
	frames := make(chan protocol.Frame, 1)
	m := New("device:84", dialer, nil, Handlers{
		OnFrame:       func(f protocol.Frame) { frames <- f },
		OnDecodeError: func(err error) { decodeErrs <- err },
	})
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer m.Disconnect()

	server := <-dialer.server
	go server.Write([]byte("garbage\r!VOL(-100)\r"))

	select {
	case <-decodeErrs:
	case <-time.After(time.Second):
		t.Fatal("decode error never reported")
	}
	got := waitFrames(t, frames, 1)
	if got[0].Mnemonic != "VOL" {
		t.Errorf("frame after bad line = %+v", got[0])
	}
}

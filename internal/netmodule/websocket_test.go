package netmodule

import (
	"fmt"
	"testing"
	"time"
)

// connectToFreshServer starts a listener on port and dials it, retrying the
// dial briefly while the listener's goroutine finishes binding.
func connectToFreshServer(t *testing.T, port int) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	if _, err := hub.Listen("127.0.0.1", port); err != nil {
		t.Fatalf("Listen: %v", err)
	}

	url := fmt.Sprintf("ws://127.0.0.1:%d/", port)
	var clientID string
	var err error
	for i := 0; i < 20; i++ {
		clientID, err = hub.Connect(url)
		if err == nil {
			break
		}
		time.Sleep(25 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return hub, clientID
}

func TestListenConnectSendThenReceiveTimesOut(t *testing.T) {
	hub, clientID := connectToFreshServer(t, 18181)
	defer hub.Close(clientID)

	if err := hub.Send(clientID, "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// the server doesn't echo on its own (no echo handler is installed),
	// so the client receives nothing within a short deadline.
	if _, err := hub.Receive(clientID, 100*time.Millisecond); err == nil {
		t.Fatal("expected Receive to time out with no echo handler installed")
	}
}

func TestSendBinary(t *testing.T) {
	hub, clientID := connectToFreshServer(t, 18182)
	defer hub.Close(clientID)

	if err := hub.SendBinary(clientID, []byte{0x00, 0x01, 0xff}); err != nil {
		t.Fatalf("SendBinary: %v", err)
	}
	if err := hub.SendBinary("missing", []byte("x")); err == nil {
		t.Fatal("expected error sending binary on an unknown connection id")
	}
}

func TestPing(t *testing.T) {
	hub, clientID := connectToFreshServer(t, 18183)
	defer hub.Close(clientID)

	if err := hub.Ping(clientID); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := hub.Ping("missing"); err == nil {
		t.Fatal("expected error pinging an unknown connection id")
	}
}

func TestPingAndSendBinaryRejectClosedConnection(t *testing.T) {
	hub, clientID := connectToFreshServer(t, 18184)
	if err := hub.Close(clientID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := hub.Ping(clientID); err == nil {
		t.Fatal("expected Ping on a closed connection to error")
	}
	if err := hub.SendBinary(clientID, []byte("x")); err == nil {
		t.Fatal("expected SendBinary on a closed connection to error")
	}
}

func TestCloseUnknownConnection(t *testing.T) {
	hub := NewHub()
	if err := hub.Close("missing"); err == nil {
		t.Fatal("expected error closing an unknown connection id")
	}
}

func TestStopUnknownServer(t *testing.T) {
	hub := NewHub()
	if err := hub.StopServer("missing"); err == nil {
		t.Fatal("expected error stopping an unknown server id")
	}
}

func TestNewIDIsSequentialAndPrefixed(t *testing.T) {
	hub := NewHub()
	a := hub.newID("ws")
	b := hub.newID("ws")
	if a == b {
		t.Fatalf("newID returned the same id twice: %q", a)
	}
	if a != "ws_1" || b != "ws_2" {
		t.Fatalf("newID = %q, %q, want ws_1, ws_2", a, b)
	}
}

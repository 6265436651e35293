package netmodule

import (
	"testing"

	"pkvm/internal/code"
	"pkvm/internal/value"
)

func findNativeFunc(t *testing.T, fns []value.NativeFunc, name string) value.NativeFunc {
	t.Helper()
	for _, fn := range fns {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no native function named %q", name)
	return value.NativeFunc{}
}

func TestNativeFuncsWireSendBinaryAndPing(t *testing.T) {
	hub, clientID := connectToFreshServer(t, 18185)
	defer hub.Close(clientID)

	fns := NativeFuncs(hub)

	sendBinary := findNativeFunc(t, fns, "send_binary")
	if _, err := sendBinary.Fn([]code.Value{value.NewStr(clientID), value.NewStr("\x00\x01")}); err != nil {
		t.Fatalf("send_binary native call: %v", err)
	}

	ping := findNativeFunc(t, fns, "ping")
	if _, err := ping.Fn([]code.Value{value.NewStr(clientID)}); err != nil {
		t.Fatalf("ping native call: %v", err)
	}
	if _, err := ping.Fn([]code.Value{value.NewStr("missing")}); err == nil {
		t.Fatal("expected ping native call on an unknown id to error")
	}
}

package netmodule

import (
	"fmt"
	"time"

	"pkvm/internal/code"
	"pkvm/internal/value"
)

func argStr(args []code.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("netmodule: missing argument %d", i)
	}
	s, ok := args[i].(value.Str)
	if !ok {
		return "", fmt.Errorf("netmodule: argument %d must be a str, got %s", i, args[i].GetTypeName())
	}
	return s.S.String(), nil
}

func argInt(args []code.Value, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("netmodule: missing argument %d", i)
	}
	n, ok := args[i].(value.Int)
	if !ok {
		return 0, fmt.Errorf("netmodule: argument %d must be an int, got %s", i, args[i].GetTypeName())
	}
	return int64(n), nil
}

// NativeFuncs returns the "net" module's callables: connect, send,
// send_binary, receive, close, ping, listen, each bound to hub.
func NativeFuncs(hub *Hub) []value.NativeFunc {
	return []value.NativeFunc{
		{Name: "connect", Fn: func(args []code.Value) (code.Value, error) {
			url, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			id, err := hub.Connect(url)
			if err != nil {
				return nil, err
			}
			return value.NewStr(id), nil
		}},
		{Name: "send", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			msg, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			if err := hub.Send(id, msg); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
		{Name: "send_binary", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			data, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			if err := hub.SendBinary(id, []byte(data)); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
		{Name: "ping", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			if err := hub.Ping(id); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
		{Name: "receive", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			timeoutMs, err := argInt(args, 1)
			if err != nil {
				return nil, err
			}
			msg, err := hub.Receive(id, time.Duration(timeoutMs)*time.Millisecond)
			if err != nil {
				return nil, err
			}
			return value.NewStr(msg), nil
		}},
		{Name: "close", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			if err := hub.Close(id); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
		{Name: "listen", Fn: func(args []code.Value) (code.Value, error) {
			addr, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			port, err := argInt(args, 1)
			if err != nil {
				return nil, err
			}
			id, err := hub.Listen(addr, int(port))
			if err != nil {
				return nil, err
			}
			return value.NewStr(id), nil
		}},
	}
}

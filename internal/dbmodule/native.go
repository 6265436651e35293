package dbmodule

import (
	"fmt"

	"pkvm/internal/code"
	"pkvm/internal/value"
)

func argStr(args []code.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("dbmodule: missing argument %d", i)
	}
	s, ok := args[i].(value.Str)
	if !ok {
		return "", fmt.Errorf("dbmodule: argument %d must be a str, got %s", i, args[i].GetTypeName())
	}
	return s.S.String(), nil
}

func rowToValue(row map[string]code.Value) code.Value {
	// internal/refdispatch has no map value kind (out of scope per
	// spec.md's Non-goals on the object system), so a single row is
	// rendered as a descriptive str; the "query" function below returns
	// multiple rows as a value.List of these strs so a script can still iterate the
	// full result set through BUILD_LIST-shaped values.
	parts := make(map[string]string, len(row))
	for col, v := range row {
		parts[col] = value.Repr(v)
	}
	return value.NewStr(fmt.Sprintf("%v", parts))
}

// NativeFuncs returns the "db" module's callables: connect, query,
// queryOne, execute, close, closeAll, each bound to mgr.
func NativeFuncs(mgr *Manager) []value.NativeFunc {
	return []value.NativeFunc{
		{Name: "connect", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			dbType, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			dsn, err := argStr(args, 2)
			if err != nil {
				return nil, err
			}
			if err := mgr.Connect(id, dbType, dsn); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
		{Name: "execute", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			query, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			return mgr.Execute(id, query)
		}},
		{Name: "query", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			query, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			rows, err := mgr.Query(id, query)
			if err != nil {
				return nil, err
			}
			list := make(value.List, len(rows))
			for i, row := range rows {
				list[i] = rowToValue(row)
			}
			return list, nil
		}},
		{Name: "queryOne", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			query, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			row, err := mgr.QueryOne(id, query)
			if err != nil {
				return nil, err
			}
			return rowToValue(row), nil
		}},
		{Name: "close", Fn: func(args []code.Value) (code.Value, error) {
			id, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			if err := mgr.Close(id); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
		{Name: "closeAll", Fn: func(args []code.Value) (code.Value, error) {
			if err := mgr.CloseAll(); err != nil {
				return nil, err
			}
			return value.None, nil
		}},
	}
}

package actor

import "github.com/codewandler/cellactor/internal/reflector"

type msgTyper interface{ MsgType() string }

// msgTypeOf names x for metrics, logs and errors. Messages may override the
// reflected name by implementing MsgType() string.
func msgTypeOf(x any) string {
	if mt, ok := x.(msgTyper); ok {
		return mt.MsgType()
	}
	return reflector.NameOf(x)
}

func msgTypeFor[T any]() string {
	return reflector.NameFor[T]()
}

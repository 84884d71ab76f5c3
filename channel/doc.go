// Package channel implements a fixed-capacity multi-producer multi-consumer
// channel for values of one fixed-layout type, backed by a circular byte
// buffer and guarded by a mutex with two condition variables.
//
// A channel is created with an explicit capacity and never grows. Send and
// Recv block until a slot or an element is available; TrySend and TryRecv
// return immediately with a success flag instead. Blocking operations have
// no timeout or cancellation: a channel nobody reads from will block its
// writers indefinitely, and keeping that from happening is the caller's
// responsibility.
//
// Handles returned by New may be shared with other goroutines directly, or
// duplicated with Clone so each goroutine owns and closes its own handle.
// The buffer is released when the last handle is closed:
//
//	ch, err := channel.New[uint64](128)
//	if err != nil {
//		...
//	}
//	defer ch.Close()
//
//	go func(ch *channel.Chan[uint64]) {
//		defer ch.Close()
//		ch.Send(42)
//	}(ch.Clone())
//
//	fmt.Println(ch.Recv())
//
// Values cross the channel by flat byte copy. The sender must hand over the
// value whole: after Send returns, any alias the sender kept into the
// value's content is a bug the channel cannot detect. The Iso wrapper makes
// this hand-off explicit for values that travel further than one hop.
package channel

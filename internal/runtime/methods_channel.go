package runtime

import "time"

func init() {
	channelMethods = map[string]MethodFunc{
		"send":     chanSend,
		"recv":     chanRecv,
		"try_send": chanTrySend,
		"try_recv": chanTryRecv,
		"close":    chanClose,
	}
}

func chanSend(interp *Interp, recv Value, args []Value) (Value, error) {
	if err := interp.Send(recv, argAt(args, 0)); err != nil {
		return Value{}, err
	}
	return Null, nil
}

// chanRecv accepts an optional timeout in seconds; on expiry it returns
// null rather than throwing.
func chanRecv(interp *Interp, recv Value, args []Value) (Value, error) {
	if a := argAt(args, 0); a.Kind == KindInt || a.Kind == KindFloat {
		seconds := a.F
		if a.Kind == KindInt {
			seconds = float64(a.I)
		}
		v, ok, err := interp.RecvTimeout(recv, time.Duration(seconds*float64(time.Second)))
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Null, nil
		}
		return v, nil
	}
	v, ok, err := interp.Recv(recv)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Null, nil
	}
	return v, nil
}

func chanTrySend(interp *Interp, recv Value, args []Value) (Value, error) {
	ok, err := interp.TrySend(recv, argAt(args, 0))
	if err != nil {
		return Value{}, err
	}
	return MakeBool(ok), nil
}

func chanTryRecv(interp *Interp, recv Value, args []Value) (Value, error) {
	v, ok, err := interp.TryRecv(recv)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Null, nil
	}
	return v, nil
}

func chanClose(interp *Interp, recv Value, args []Value) (Value, error) {
	if err := interp.CloseChannel(recv); err != nil {
		return Value{}, err
	}
	return Null, nil
}

package runtime

func init() {
	taskMethods = map[string]MethodFunc{
		"join":   taskJoin,
		"detach": taskDetach,
	}
}

func taskJoin(interp *Interp, recv Value, args []Value) (Value, error) {
	return interp.Join(recv)
}

func taskDetach(interp *Interp, recv Value, args []Value) (Value, error) {
	if err := interp.Detach(recv); err != nil {
		return Value{}, err
	}
	return Null, nil
}

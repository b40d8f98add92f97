package helpers

// RecoverOnError returns a function to be deferred which stores an error
// raised with panic into err. Panics with other values are propagated.
//
//	defer helpers.RecoverOnError(&err)()
func RecoverOnError(err *error) func() {
	return func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			*err = e
		}
	}
}

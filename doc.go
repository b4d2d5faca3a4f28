// Package paramform bundles a parameter schema, an immutable form state held
// in a store, a binder that validates raw input, and a memoized preview of the
// request target. Every accepted edit yields a new snapshot and a new target:
//
//	form := paramform.NewStereogramForm()
//	form.Commit("seed", "5")
//	form.Target() // /generate?src=&pat=&seed=5&partsize=100&depth=40&sym=false&inverse=false&flat=false
//
// A Form is owned by one goroutine; callers serving concurrent requests build
// one per request.
package paramform

// Package wrapper resolves the chrome drawn around Tab and Pane content.
//
// Wrappers are looked up by container key in a Registry built once at
// startup. Containers without a registered wrapper fall back to the
// registry's default entry, and if there is none to DefaultLayout, which
// draws no chrome of its own.
//
// # Basic Usage
//
//	reg := wrapper.NewRegistry().
//	    Register("tabs", func(c wrapper.Container) (any, error) {
//	        return bottomBar(c.Key, c.ActiveBranch), nil
//	    }).
//	    Register("split", func(c wrapper.Container) (any, error) {
//	        return divider(c.Key), nil
//	    })
//
//	fn, ok := reg.Resolve("tabs")
//
// A container is wrapped by at most one wrapper. Registering a key twice
// replaces the earlier function.
package wrapper

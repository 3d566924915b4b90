// Package api defines the error types shared by the resolver, the lifecycle
// manager and the command line.
//
// Callers test for them with errors.As or the Is* helpers, which also match
// wrapped errors:
//
//	if api.IsServerConfigNotFound(err) {
//	    // unknown server name or package
//	}
//	var setupErr *api.SetupError
//	if errors.As(err, &setupErr) {
//	    fmt.Println(setupErr.Stderr)
//	}
package api

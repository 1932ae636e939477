// Package mockserver provides a local HTTP server that substitutes responses
// for API calls during end-to-end tests.
//
// A Server is started on an ephemeral port, routes are registered per method
// and path pattern, and every request the application under test makes is
// recorded for later assertions:
//
//	srv, err := mockserver.Start(mockserver.Options{})
//	if err != nil {
//	    return err
//	}
//	defer srv.Close(ctx)
//
//	srv.MockGET("/api/products", 200, []Product{{Name: "widget"}})
//	srv.MockPOST("/api/login", 401, map[string]string{"error": "invalid credentials"})
//	srv.Mock("GET", "/api/users/*", mockserver.Response{Status: 200, JSON: user})
//
// Patterns are either literal paths or globs. Literal routes win over glob
// routes; within each class the most recently registered route wins, so a
// test can override a default fixture. Unmatched requests get a JSON 404 and
// are still recorded.
package mockserver

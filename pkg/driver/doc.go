// Package driver provides browser automation for page objects through Playwright.
//
// The package is built around three core concepts:
//
//  1. Driver: the selector-oriented operation surface page objects program
//     against (navigate, wait, click, fill, find, text)
//  2. Session: a Playwright browser/context/page triple implementing Driver
//  3. SessionManager: registry of named sessions with limits and idle cleanup
//
// # Session Lifecycle
//
// Sessions follow this lifecycle:
//
//  1. Create: SessionManager.StartSession creates a new named session
//  2. Use: page objects drive the session through the Driver interface
//  3. Close: CloseSession releases browser resources
//  4. Timeout: idle sessions are reaped by CleanupIdleSessions
//
// # Example Usage
//
//	manager := driver.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//	    return err
//	}
//	defer manager.Shutdown()
//
//	session, err := manager.StartSession("checkout", driver.SessionOptions{
//	    Headless: true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	home := pages.NewHomePage(session, baseURL)
//	if err := home.Open(); err != nil {
//	    return err
//	}
package driver

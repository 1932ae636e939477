// Package pages contains page objects for the application under test.
//
// A page object encapsulates the selectors and interactions for one screen,
// keeping test scenarios declarative: scenarios say what to do, page objects
// know where the elements live. Page objects hold no state beyond their
// selectors and the driver they delegate to; failures while waiting for
// elements are logged and returned wrapped, never swallowed.
package pages

package driver

import "errors"

// Driver is the operation surface page objects program against.
// Implementations delegate to a real browser; tests substitute fakes.
type Driver interface {
	// Navigate loads the given URL and waits per opts.
	Navigate(url string, opts NavigateOptions) error

	// WaitForSelector blocks until an element matching selector reaches the
	// requested state, returning a handle to it.
	WaitForSelector(selector string, opts WaitOptions) (Element, error)

	// Click clicks the first element matching selector.
	Click(selector string, opts ClickOptions) error

	// Fill replaces the value of the input matching selector.
	Fill(selector, value string, opts FillOptions) error

	// FindElement returns the first element matching selector.
	// Returns ErrNoSuchElement when nothing matches.
	FindElement(selector string) (Element, error)

	// FindElements returns all elements matching selector.
	// An empty slice and nil error means nothing matched.
	FindElements(selector string) ([]Element, error)

	// Text returns the text content of the first element matching selector.
	Text(selector string) (string, error)

	// URL returns the current page URL.
	URL() string

	// Title returns the current page title.
	Title() (string, error)

	// Content returns the full HTML of the current page.
	Content() (string, error)

	// Close releases the browser resources behind this driver.
	Close() error
}

// Element is a handle to a single DOM element.
type Element interface {
	// Text returns the element's text content.
	Text() (string, error)

	// Attribute returns the value of the named attribute.
	Attribute(name string) (string, error)

	// Visible reports whether the element is visible.
	Visible() (bool, error)
}

var (
	// ErrSessionNotFound is returned when a named session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when starting a session under a taken name.
	ErrSessionExists = errors.New("session already exists")

	// ErrNotInitialized is returned when the manager is used before Initialize.
	ErrNotInitialized = errors.New("session manager not initialized")

	// ErrNoSuchElement is returned when a selector matches nothing.
	ErrNoSuchElement = errors.New("no element matches selector")
)

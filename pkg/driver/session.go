package driver

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents an active browser session with its associated resources.
// Session implements Driver.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string
}

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// WaitForSelector waits for an element matching selector to reach the
// requested state and returns a handle to it.
func (s *Session) WaitForSelector(selector string, opts WaitOptions) (Element, error) {
	s.UpdateLastUsed()

	if selector == "" {
		return nil, fmt.Errorf("selector is required for wait")
	}

	playwrightOpts := playwright.PageWaitForSelectorOptions{}

	state := opts.State
	if state == "" {
		state = DefaultWaitState
	}
	waitState := playwright.WaitForSelectorState(state)
	playwrightOpts.State = &waitState

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	handle, err := s.Page.WaitForSelector(selector, playwrightOpts)
	if err != nil {
		return nil, fmt.Errorf("wait failed: %w", err)
	}
	if handle == nil {
		// Detached/hidden states resolve with no handle
		return nil, nil
	}

	return &element{handle: handle}, nil
}

// Click clicks the first element matching selector.
func (s *Session) Click(selector string, opts ClickOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageClickOptions{}

	if opts.Button != "" {
		button := playwright.MouseButton(opts.Button)
		playwrightOpts.Button = &button
	}

	if opts.ClickCount > 0 {
		playwrightOpts.ClickCount = &opts.ClickCount
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Click(selector, playwrightOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Update current URL in case click caused navigation
	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill fills an input element with the specified value.
func (s *Session) Fill(selector, value string, opts FillOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageFillOptions{}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Fill(selector, value, playwrightOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	return nil
}

// FindElement returns the first element matching selector.
func (s *Session) FindElement(selector string) (Element, error) {
	s.UpdateLastUsed()

	handle, err := s.Page.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, selector)
	}

	return &element{handle: handle}, nil
}

// FindElements returns all elements matching selector.
func (s *Session) FindElements(selector string) ([]Element, error) {
	s.UpdateLastUsed()

	handles, err := s.Page.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}

	elements := make([]Element, 0, len(handles))
	for _, handle := range handles {
		elements = append(elements, &element{handle: handle})
	}
	return elements, nil
}

// Text returns the text content of the first element matching selector.
func (s *Session) Text(selector string) (string, error) {
	el, err := s.FindElement(selector)
	if err != nil {
		return "", err
	}

	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// URL returns the current page URL.
func (s *Session) URL() string {
	return s.Page.URL()
}

// Title returns the current page title.
func (s *Session) Title() (string, error) {
	s.UpdateLastUsed()
	return s.Page.Title()
}

// Content returns the full HTML of the current page.
func (s *Session) Content() (string, error) {
	s.UpdateLastUsed()
	return s.Page.Content()
}

// Close releases page, context, and browser resources.
// Errors during cleanup are ignored so teardown always completes.
func (s *Session) Close() error {
	_ = s.Page.Close()
	_ = s.Context.Close()
	return s.Browser.Close()
}

// element adapts a Playwright element handle to the Element interface.
type element struct {
	handle playwright.ElementHandle
}

// Text returns the element's text content.
func (e *element) Text() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// Attribute returns the value of the named attribute.
func (e *element) Attribute(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute lookup failed: %w", err)
	}
	return value, nil
}

// Visible reports whether the element is visible.
func (e *element) Visible() (bool, error) {
	return e.handle.IsVisible()
}

package pages

import (
	"fmt"
	"testing"

	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeElement is a scripted Element for tests.
type fakeElement struct {
	text    string
	attrs   map[string]string
	visible bool
}

func (f *fakeElement) Text() (string, error) { return f.text, nil }

func (f *fakeElement) Attribute(name string) (string, error) {
	return f.attrs[name], nil
}

func (f *fakeElement) Visible() (bool, error) { return f.visible, nil }

// fakeDriver is a scripted Driver recording every call.
type fakeDriver struct {
	navigated []string
	waited    []string
	clicked   []string
	filled    map[string]string

	elements map[string][]driver.Element
	texts    map[string]string

	waitErr error
	navErr  error
	fillErr error
	url     string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		filled:   make(map[string]string),
		elements: make(map[string][]driver.Element),
		texts:    make(map[string]string),
		url:      "about:blank",
	}
}

func (f *fakeDriver) Navigate(url string, opts driver.NavigateOptions) error {
	if f.navErr != nil {
		return f.navErr
	}
	f.navigated = append(f.navigated, url)
	f.url = url
	return nil
}

func (f *fakeDriver) WaitForSelector(selector string, opts driver.WaitOptions) (driver.Element, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	f.waited = append(f.waited, selector)
	return &fakeElement{visible: true}, nil
}

func (f *fakeDriver) Click(selector string, opts driver.ClickOptions) error {
	f.clicked = append(f.clicked, selector)
	return nil
}

func (f *fakeDriver) Fill(selector, value string, opts driver.FillOptions) error {
	if f.fillErr != nil {
		return f.fillErr
	}
	f.filled[selector] = value
	return nil
}

func (f *fakeDriver) FindElement(selector string) (driver.Element, error) {
	if els, ok := f.elements[selector]; ok && len(els) > 0 {
		return els[0], nil
	}
	if text, ok := f.texts[selector]; ok {
		return &fakeElement{text: text, visible: true}, nil
	}
	return nil, fmt.Errorf("%w: %s", driver.ErrNoSuchElement, selector)
}

func (f *fakeDriver) FindElements(selector string) ([]driver.Element, error) {
	return f.elements[selector], nil
}

func (f *fakeDriver) Text(selector string) (string, error) {
	el, err := f.FindElement(selector)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (f *fakeDriver) URL() string { return f.url }

func (f *fakeDriver) Title() (string, error) { return "fake", nil }

func (f *fakeDriver) Content() (string, error) { return "<html></html>", nil }

func (f *fakeDriver) Close() error { return nil }

func TestHomePage_Open(t *testing.T) {
	d := newFakeDriver()
	page := NewHomePage(d, "http://127.0.0.1:8089/")

	require.NoError(t, page.Open())

	// Trailing slash on the base URL must not double up
	require.Len(t, d.navigated, 1)
	assert.Equal(t, "http://127.0.0.1:8089/", d.navigated[0])

	// Readiness waits on heading then nav
	assert.Equal(t, []string{selHomeHeading, selHomeNav}, d.waited)
}

func TestHomePage_OpenNavigationFailure(t *testing.T) {
	d := newFakeDriver()
	d.navErr = fmt.Errorf("connection refused")
	page := NewHomePage(d, "http://127.0.0.1:8089")

	err := page.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, d.waited, "should not wait after failed navigation")
}

func TestHomePage_WaitFailureIsWrapped(t *testing.T) {
	d := newFakeDriver()
	d.waitErr = fmt.Errorf("timeout 30000ms exceeded")
	page := NewHomePage(d, "http://127.0.0.1:8089")

	err := page.WaitUntilReady()
	require.Error(t, err)
	assert.Contains(t, err.Error(), selHomeHeading)
	assert.Contains(t, err.Error(), "timeout")
}

func TestHomePage_Heading(t *testing.T) {
	d := newFakeDriver()
	d.texts[selHomeHeading] = "  Welcome to Acme  "
	page := NewHomePage(d, "http://127.0.0.1:8089")

	heading, err := page.Heading()
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Acme", heading, "heading should be trimmed")
}

func TestHomePage_NavigationLinks(t *testing.T) {
	d := newFakeDriver()
	d.elements[selHomeNavLinks] = []driver.Element{
		&fakeElement{text: "Home", attrs: map[string]string{"href": "/"}},
		&fakeElement{text: "Login", attrs: map[string]string{"href": "/login"}},
	}
	page := NewHomePage(d, "http://127.0.0.1:8089")

	links, err := page.NavigationLinks()
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, NavLink{Text: "Home", Href: "/"}, links[0])
	assert.Equal(t, NavLink{Text: "Login", Href: "/login"}, links[1])
}

func TestHomePage_NavigationLinksEmpty(t *testing.T) {
	d := newFakeDriver()
	page := NewHomePage(d, "http://127.0.0.1:8089")

	links, err := page.NavigationLinks()
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestHomePage_Search(t *testing.T) {
	d := newFakeDriver()
	page := NewHomePage(d, "http://127.0.0.1:8089")

	require.NoError(t, page.Search("widgets"))
	assert.Equal(t, "widgets", d.filled[selSearchInput])
	assert.Equal(t, []string{selSearchButton}, d.clicked)
}

func TestLoginPage_Open(t *testing.T) {
	d := newFakeDriver()
	page := NewLoginPage(d, "http://127.0.0.1:8089")

	require.NoError(t, page.Open())
	require.Len(t, d.navigated, 1)
	assert.Equal(t, "http://127.0.0.1:8089/login", d.navigated[0])
	assert.Equal(t, []string{selLoginForm}, d.waited)
}

func TestLoginPage_Login(t *testing.T) {
	d := newFakeDriver()
	page := NewLoginPage(d, "http://127.0.0.1:8089")

	require.NoError(t, page.Login("alice", "s3cret"))
	assert.Equal(t, "alice", d.filled[selUsernameInput])
	assert.Equal(t, "s3cret", d.filled[selPasswordInput])
	assert.Equal(t, []string{selLoginSubmit}, d.clicked)
}

func TestLoginPage_LoginFillFailure(t *testing.T) {
	d := newFakeDriver()
	d.fillErr = fmt.Errorf("element not editable")
	page := NewLoginPage(d, "http://127.0.0.1:8089")

	err := page.Login("alice", "s3cret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fill username")
	assert.Empty(t, d.clicked, "should not submit after failed fill")
}

func TestLoginPage_ErrorMessage(t *testing.T) {
	d := newFakeDriver()
	d.texts[selLoginError] = "Invalid credentials"
	page := NewLoginPage(d, "http://127.0.0.1:8089")

	msg, err := page.ErrorMessage()
	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", msg)
	assert.Equal(t, []string{selLoginError}, d.waited, "should wait for the banner first")
}

func TestLoginPage_IsLoggedIn(t *testing.T) {
	d := newFakeDriver()
	page := NewLoginPage(d, "http://127.0.0.1:8089")

	loggedIn, err := page.IsLoggedIn()
	require.NoError(t, err)
	assert.False(t, loggedIn)

	d.elements[selLogoutLink] = []driver.Element{&fakeElement{text: "Log out"}}
	loggedIn, err = page.IsLoggedIn()
	require.NoError(t, err)
	assert.True(t, loggedIn)
}

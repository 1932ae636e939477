package pages

import (
	"fmt"

	"github.com/entrhq/pagekit/pkg/driver"
)

// Selectors for the login page. Keys are unique within the page.
const (
	loginPath = "/login"

	selLoginForm     = `form[data-testid="login-form"]`
	selUsernameInput = `input[name="username"]`
	selPasswordInput = `input[name="password"]`
	selLoginSubmit   = `button[type="submit"]`
	selLoginError    = `[data-testid="login-error"]`
	selLogoutLink    = `a[data-testid="logout"]`
)

// LoginPage is the page object for the authentication screen.
type LoginPage struct {
	basePage
}

// NewLoginPage creates a login page object bound to a driver and base URL.
func NewLoginPage(d driver.Driver, baseURL string) *LoginPage {
	return &LoginPage{basePage: newBasePage(d, baseURL, "LoginPage")}
}

// Open navigates to the login page and waits for the form.
func (p *LoginPage) Open() error {
	if err := p.open(loginPath); err != nil {
		return err
	}
	return p.WaitUntilReady()
}

// WaitUntilReady waits for the login form to be visible.
func (p *LoginPage) WaitUntilReady() error {
	return p.waitVisible(selLoginForm)
}

// Login fills the credential fields and submits the form.
func (p *LoginPage) Login(username, password string) error {
	if err := p.driver.Fill(selUsernameInput, username, driver.FillOptions{}); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := p.driver.Fill(selPasswordInput, password, driver.FillOptions{}); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := p.driver.Click(selLoginSubmit, driver.ClickOptions{}); err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}
	return nil
}

// ErrorMessage returns the text of the login error banner, waiting for it
// to appear first.
func (p *LoginPage) ErrorMessage() (string, error) {
	if err := p.waitVisible(selLoginError); err != nil {
		return "", err
	}
	return p.text(selLoginError)
}

// IsLoggedIn reports whether a logout link is present, the page's signal
// that authentication succeeded.
func (p *LoginPage) IsLoggedIn() (bool, error) {
	elements, err := p.driver.FindElements(selLogoutLink)
	if err != nil {
		return false, fmt.Errorf("find logout link: %w", err)
	}
	return len(elements) > 0, nil
}

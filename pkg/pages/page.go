package pages

import (
	"fmt"
	"strings"

	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/entrhq/pagekit/pkg/logging"
)

// basePage carries what every page object needs: the driver, the base URL of
// the deployment under test, and a logger for wait failures.
type basePage struct {
	driver  driver.Driver
	baseURL string
	logger  *logging.Logger
	name    string
}

func newBasePage(d driver.Driver, baseURL, name string) basePage {
	logger, _ := logging.NewLogger("pages") // fallback logger on error is still usable
	return basePage{
		driver:  d,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		name:    name,
	}
}

// open navigates to a path under the base URL.
func (p *basePage) open(path string) error {
	url := p.baseURL + path
	if err := p.driver.Navigate(url, driver.NavigateOptions{WaitUntil: "domcontentloaded"}); err != nil {
		p.logger.Errorf("%s: failed to open %s: %v", p.name, url, err)
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// waitVisible waits for a selector to become visible, logging and wrapping
// any failure.
func (p *basePage) waitVisible(selector string) error {
	if _, err := p.driver.WaitForSelector(selector, driver.WaitOptions{State: "visible"}); err != nil {
		p.logger.Errorf("%s: wait for %q failed at %s: %v", p.name, selector, p.driver.URL(), err)
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

// text returns the trimmed text of the first element matching selector.
func (p *basePage) text(selector string) (string, error) {
	text, err := p.driver.Text(selector)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

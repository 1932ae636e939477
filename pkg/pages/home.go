package pages

import (
	"fmt"

	"github.com/entrhq/pagekit/pkg/driver"
)

// Selectors for the home page. Keys are unique within the page.
const (
	homePath = "/"

	selHomeHeading  = `[data-testid="home-heading"]`
	selHomeNav      = `nav[role="navigation"]`
	selHomeNavLinks = `nav[role="navigation"] a`
	selSearchInput  = `input[name="q"]`
	selSearchButton = `button[data-testid="search-submit"]`
)

// HomePage is the page object for the application's landing screen.
type HomePage struct {
	basePage
}

// NewHomePage creates a home page object bound to a driver and base URL.
func NewHomePage(d driver.Driver, baseURL string) *HomePage {
	return &HomePage{basePage: newBasePage(d, baseURL, "HomePage")}
}

// Open navigates to the home page and waits for it to be ready.
func (p *HomePage) Open() error {
	if err := p.open(homePath); err != nil {
		return err
	}
	return p.WaitUntilReady()
}

// WaitUntilReady waits for the heading and navigation to be visible.
func (p *HomePage) WaitUntilReady() error {
	if err := p.waitVisible(selHomeHeading); err != nil {
		return err
	}
	return p.waitVisible(selHomeNav)
}

// Heading returns the text of the main heading.
func (p *HomePage) Heading() (string, error) {
	return p.text(selHomeHeading)
}

// NavLink is one entry in the home page navigation.
type NavLink struct {
	Text string
	Href string
}

// NavigationLinks returns the text and target of every navigation link.
func (p *HomePage) NavigationLinks() ([]NavLink, error) {
	elements, err := p.driver.FindElements(selHomeNavLinks)
	if err != nil {
		return nil, fmt.Errorf("find navigation links: %w", err)
	}

	links := make([]NavLink, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("read link text: %w", err)
		}
		href, err := el.Attribute("href")
		if err != nil {
			return nil, fmt.Errorf("read link href: %w", err)
		}
		links = append(links, NavLink{Text: text, Href: href})
	}

	return links, nil
}

// Search fills the search box and submits the query.
func (p *HomePage) Search(query string) error {
	if err := p.driver.Fill(selSearchInput, query, driver.FillOptions{}); err != nil {
		return fmt.Errorf("fill search input: %w", err)
	}
	if err := p.driver.Click(selSearchButton, driver.ClickOptions{}); err != nil {
		return fmt.Errorf("submit search: %w", err)
	}
	return nil
}

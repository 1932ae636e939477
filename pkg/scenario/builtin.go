package scenario

import (
	"context"
	"fmt"

	"github.com/entrhq/pagekit/pkg/pages"
)

// RegisterBuiltins adds the stock scenarios for the example application:
// home page navigation and the login flows.
func RegisterBuiltins(registry *Registry) error {
	builtins := []Scenario{
		homeNavigation(),
		loginSuccess(),
		loginBadPassword(),
	}

	for _, s := range builtins {
		if err := registry.Register(s); err != nil {
			return err
		}
	}
	return nil
}

func homeNavigation() Scenario {
	return Scenario{
		Name:        "home-navigation",
		Description: "Home page renders its heading and navigation links",
		Steps: []Step{
			{
				Name: "open home page",
				Run: func(ctx context.Context, env *Env) error {
					return pages.NewHomePage(env.Driver, env.BaseURL).Open()
				},
			},
			{
				Name: "heading is present",
				Run: func(ctx context.Context, env *Env) error {
					heading, err := pages.NewHomePage(env.Driver, env.BaseURL).Heading()
					if err != nil {
						return err
					}
					if heading == "" {
						return fmt.Errorf("home page heading is empty")
					}
					env.Values["heading"] = heading
					return nil
				},
			},
			{
				Name: "navigation includes login",
				Run: func(ctx context.Context, env *Env) error {
					links, err := pages.NewHomePage(env.Driver, env.BaseURL).NavigationLinks()
					if err != nil {
						return err
					}
					for _, link := range links {
						if link.Href == "/login" {
							return nil
						}
					}
					return fmt.Errorf("no navigation link to /login in %d links", len(links))
				},
			},
		},
	}
}

func loginSuccess() Scenario {
	return Scenario{
		Name:        "login-success",
		Description: "Valid credentials land the user in a logged-in state",
		Steps: []Step{
			{
				Name: "open login page",
				Run: func(ctx context.Context, env *Env) error {
					return pages.NewLoginPage(env.Driver, env.BaseURL).Open()
				},
			},
			{
				Name: "submit valid credentials",
				Run: func(ctx context.Context, env *Env) error {
					return pages.NewLoginPage(env.Driver, env.BaseURL).Login("alice", "correct-horse")
				},
			},
			{
				Name: "user is logged in",
				Run: func(ctx context.Context, env *Env) error {
					loggedIn, err := pages.NewLoginPage(env.Driver, env.BaseURL).IsLoggedIn()
					if err != nil {
						return err
					}
					if !loggedIn {
						return fmt.Errorf("expected logged-in state after valid login")
					}
					return nil
				},
			},
		},
	}
}

func loginBadPassword() Scenario {
	return Scenario{
		Name:        "login-bad-password",
		Description: "Invalid credentials surface the error banner",
		Steps: []Step{
			{
				Name: "open login page",
				Run: func(ctx context.Context, env *Env) error {
					return pages.NewLoginPage(env.Driver, env.BaseURL).Open()
				},
			},
			{
				Name: "submit invalid credentials",
				Run: func(ctx context.Context, env *Env) error {
					return pages.NewLoginPage(env.Driver, env.BaseURL).Login("alice", "wrong")
				},
			},
			{
				Name: "error banner is shown",
				Run: func(ctx context.Context, env *Env) error {
					msg, err := pages.NewLoginPage(env.Driver, env.BaseURL).ErrorMessage()
					if err != nil {
						return err
					}
					if msg == "" {
						return fmt.Errorf("error banner is empty")
					}
					return nil
				},
			},
		},
	}
}

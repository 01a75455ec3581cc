// Package browser provides scoped headless-browser sessions for pages
// that require script execution or interactive pagination. Sessions are
// acquired for a single listing or article fetch and released before
// the call returns; they are never held across pages.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Session is one open page inside a headless browser.
type Session interface {
	// WaitFor blocks until an element matching selector appears or the
	// timeout elapses.
	WaitFor(selector string, timeout time.Duration) error
	// Click scrolls the first element matching selector into view and
	// clicks it. When no element matches, Click returns an error
	// without waiting for one to appear.
	Click(selector string) error
	// PageSource returns the current rendered markup.
	PageSource() (string, error)
	// Close releases the session and its browser process.
	Close() error
}

// Opener opens headless-browser sessions.
type Opener interface {
	Open(ctx context.Context, url string) (Session, error)
}

// Rod opens sessions backed by a rod-controlled headless Chromium.
type Rod struct {
	pageLoadTimeout time.Duration
}

// defaultPageLoadTimeout bounds initial navigation.
const defaultPageLoadTimeout = 45 * time.Second

// NewRod creates a rod-backed session opener.
func NewRod() *Rod {
	return &Rod{pageLoadTimeout: defaultPageLoadTimeout}
}

// Open launches a headless browser, navigates to url, and waits for the
// page to load. The returned session owns the browser process; Close
// always reaps it.
func (r *Rod) Open(ctx context.Context, url string) (Session, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, fmt.Errorf("open page %s: %w", url, err)
	}

	if err := page.Timeout(r.pageLoadTimeout).WaitLoad(); err != nil {
		_ = b.Close()
		l.Kill()
		return nil, fmt.Errorf("load page %s: %w", url, err)
	}

	return &rodSession{launcher: l, browser: b, page: page}, nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func (s *rodSession) WaitFor(selector string, timeout time.Duration) error {
	if _, err := s.page.Timeout(timeout).Element(selector); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

func (s *rodSession) Click(selector string) error {
	// No sleeper: the default one retries until the page context is
	// done, and callers paginate by clicking until the control is gone.
	// A missing element must surface as an error immediately.
	el, err := s.page.Sleeper(rod.NotFoundSleeper).Element(selector)
	if err != nil {
		return fmt.Errorf("find %q: %w", selector, err)
	}
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll to %q: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

func (s *rodSession) PageSource() (string, error) {
	html, err := s.page.HTML()
	if err != nil {
		return "", fmt.Errorf("page source: %w", err)
	}
	return html, nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

package search

import (
	"context"
	"errors"
	"testing"
)

type fakeDriver struct {
	navErr   error
	pageText string
	pageHTML string
	evalJSON string
	evalErr  error
	lastURL  string
}

func (f *fakeDriver) Navigate(url string) error { f.lastURL = url; return f.navErr }
func (f *fakeDriver) HTML() (string, error)     { return f.pageHTML, nil }
func (f *fakeDriver) Text() (string, error)     { return f.pageText, nil }
func (f *fakeDriver) EvalText(js string) (string, error) {
	return f.evalJSON, f.evalErr
}

func TestBrowserSERPStructuredExtraction(t *testing.T) {
	driver := &fakeDriver{
		pageText: "normal results page",
		evalJSON: `[
			{"title":"Result one","url":"https://one.example.com/a","snippet":"first"},
			{"title":"Result two","url":"https://two.example.com/b","snippet":"second"},
			{"title":"Result three","url":"https://three.example.com/c","snippet":"third"}
		]`,
	}

	p := NewBrowserSERPProvider(driver)
	got, err := p.Search(context.Background(), "test query", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %v", got)
	}
	if got[0].Title != "Result one" || got[0].Position != 1 {
		t.Errorf("unexpected first result: %+v", got[0])
	}
}

func TestBrowserSERPDetectsCaptcha(t *testing.T) {
	driver := &fakeDriver{
		pageText: "Our systems have detected unusual traffic from your computer network.",
	}

	p := NewBrowserSERPProvider(driver)
	_, err := p.Search(context.Background(), "test query", 10)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
}

func TestBrowserSERPHTMLFallback(t *testing.T) {
	driver := &fakeDriver{
		pageText: "normal results page",
		evalErr:  errors.New("selector drift"),
		pageHTML: `<html><body>
			<div><a href="https://one.example.com/a"><h3>First organic result</h3></a></div>
			<div><a href="https://two.example.com/b"><h3>Second organic result</h3></a></div>
			<div><a href="https://three.example.com/c"><h3>Third organic result</h3></a></div>
			<div><a href="https://www.google.com/preferences">Settings</a></div>
		</body></html>`,
	}

	p := NewBrowserSERPProvider(driver)
	got, err := p.Search(context.Background(), "test query", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results from HTML fallback, got %v", got)
	}
	for _, r := range got {
		if r.URL == "https://www.google.com/preferences" {
			t.Error("internal google link should be excluded")
		}
	}
}

// snapshotDriver extends fakeDriver with screenshot support.
type snapshotDriver struct {
	fakeDriver
	png []byte
}

func (f *snapshotDriver) Screenshot() ([]byte, error) { return f.png, nil }
func (f *snapshotDriver) CurrentURL() string          { return f.lastURL }

func TestBrowserSERPCapturesBlockedPage(t *testing.T) {
	driver := &snapshotDriver{
		fakeDriver: fakeDriver{pageText: "please solve this CAPTCHA to continue"},
		png:        []byte("png-bytes"),
	}

	var gotURL string
	var gotPNG []byte
	p := NewBrowserSERPProvider(driver)
	p.OnFailure(func(pageURL string, png []byte) {
		gotURL = pageURL
		gotPNG = png
	})

	_, err := p.Search(context.Background(), "test query", 10)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	if string(gotPNG) != "png-bytes" {
		t.Errorf("screenshot not delivered: %q", gotPNG)
	}
	if gotURL == "" {
		t.Error("callback received no page URL")
	}
}

func TestBrowserSERPNoCaptureOnSuccess(t *testing.T) {
	driver := &snapshotDriver{
		fakeDriver: fakeDriver{
			pageText: "normal results page",
			evalJSON: `[
				{"title":"Result one","url":"https://one.example.com/a","snippet":""},
				{"title":"Result two","url":"https://two.example.com/b","snippet":""},
				{"title":"Result three","url":"https://three.example.com/c","snippet":""}
			]`,
		},
		png: []byte("png-bytes"),
	}

	captured := false
	p := NewBrowserSERPProvider(driver)
	p.OnFailure(func(string, []byte) { captured = true })

	if _, err := p.Search(context.Background(), "test query", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured {
		t.Error("screenshot captured on a successful scrape")
	}
}

func TestBrowserSERPCaptureNeedsSnapshotSupport(t *testing.T) {
	driver := &fakeDriver{pageText: "please solve this CAPTCHA to continue"}

	p := NewBrowserSERPProvider(driver)
	p.OnFailure(func(string, []byte) {
		t.Error("callback fired for a driver without screenshots")
	})

	if _, err := p.Search(context.Background(), "test query", 10); !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
}

func TestBrowserSERPRedirectUnwrap(t *testing.T) {
	if got := resolveRedirect("/url?q=https://example.com/page&sa=U"); got != "https://example.com/page" {
		t.Errorf("resolveRedirect() = %q", got)
	}
	if got := resolveRedirect("https://direct.example.com"); got != "https://direct.example.com" {
		t.Errorf("direct URL changed: %q", got)
	}
}

// Package browser opens article links in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens a validated URL.
type Opener interface {
	Open(rawURL string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(rawURL string) error

func (f OpenerFunc) Open(rawURL string) error { return f(rawURL) }

// System launches the platform's URL handler.
var System Opener = OpenerFunc(launch)

// Validate accepts only absolute http and https URLs.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without a host")
	}
	return nil
}

// Open validates rawURL and hands it to the system opener.
func Open(rawURL string) error {
	return OpenWith(System, rawURL)
}

// OpenWith validates rawURL and hands it to o.
func OpenWith(o Opener, rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	return o.Open(rawURL)
}

func launch(rawURL string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "windows":
		// rundll32 avoids cmd /c start shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}

package apt

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/etnz/pkgindex/deb"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	arMagic   = []byte("!<arch>\n")
)

// Loader reads stanza text from local files, http(s) URLs or stdin.
type Loader struct {
	// Client fetches http(s) locations. http.DefaultClient is used when nil.
	Client *http.Client
	// UserAgent is sent with http requests when not empty.
	UserAgent string
	// Stdin is read for the "-" location. os.Stdin is used when nil.
	Stdin io.Reader
}

// Load returns the stanza text found at location.
//
// location is "-" for stdin, an http:// or https:// URL, or a file path.
// The content is decoded with Decode, so Packages.gz, InRelease and .deb
// files can be loaded as they are.
func (l *Loader) Load(ctx context.Context, location string) (string, error) {
	data, err := l.read(ctx, location)
	if err != nil {
		return "", err
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return text, nil
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	switch {
	case location == "-":
		r := l.Stdin
		if r == nil {
			r = os.Stdin
		}
		return io.ReadAll(r)
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return l.fetch(ctx, location)
	default:
		return os.ReadFile(location)
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Decode turns raw input bytes into stanza text. The kind of input is
// sniffed from its content, not from its name:
//   - gzip data is decompressed first (Packages.gz);
//   - an ar archive is a .deb, its control file is returned;
//   - a clearsigned message (InRelease) is unwrapped with Unwrap.
//
// Anything else is returned as is.
func Decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		defer gzr.Close()
		if data, err = io.ReadAll(gzr); err != nil {
			return "", err
		}
	}
	if bytes.HasPrefix(data, arMagic) {
		return deb.ReadControl(bytes.NewReader(data))
	}
	return string(Unwrap(data)), nil
}

// Unwrap returns the plaintext of a clearsigned message, or data unchanged
// when it is not one. The signature is not checked.
func Unwrap(data []byte) []byte {
	b, _ := clearsign.Decode(data)
	if b == nil {
		return data
	}
	return b.Plaintext
}

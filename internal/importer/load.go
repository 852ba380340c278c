package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrLoadFailed is the only failure kind of the loading step: the source
// was unreachable, returned an error status, or did not parse.
var ErrLoadFailed = errors.New("data file could not be loaded")

// ErrDocumentTooLarge is wrapped, together with ErrLoadFailed, when a source
// exceeds maxDocumentBytes.
var ErrDocumentTooLarge = errors.New("document too large")

const defaultFetchTimeout = 15 * time.Second

// maxDocumentBytes bounds how much of any source is read.
var maxDocumentBytes = 16 << 20

// Loader reads trip documents from local paths, stdin ("-") or http(s) URLs.
type Loader struct {
	Client *http.Client
	Stdin  io.Reader
}

// NewLoader returns a Loader with a bounded HTTP client.
func NewLoader() *Loader {
	return &Loader{
		Client: &http.Client{Timeout: defaultFetchTimeout},
		Stdin:  os.Stdin,
	}
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadSource returns the raw bytes behind source. Errors wrap ErrLoadFailed.
func (l *Loader) ReadSource(ctx context.Context, source string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case source == "":
		return nil, fmt.Errorf("%w: no source given", ErrLoadFailed)
	case source == "-":
		data, err = readLimited(l.Stdin)
	case IsRemote(source):
		data, err = l.fetch(ctx, source)
	default:
		data, err = readFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrLoadFailed, source, err)
	}
	return data, nil
}

// Load reads and parses the trip document behind source.
func (l *Loader) Load(ctx context.Context, source string) (*TripDocument, []byte, error) {
	data, err := l.ReadSource(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, source, err)
	}
	return doc, data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return readLimited(resp.Body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

// readLimited reads r up to maxDocumentBytes. One extra byte is read so an
// oversized document is reported instead of silently cut.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(maxDocumentBytes)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrDocumentTooLarge, maxDocumentBytes)
	}
	return data, nil
}

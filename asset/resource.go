package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// The Resource type wraps a streamable scene file stored locally or served
// over http/https.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the file name of the resource without any directories.
func (r *Resource) Name() string {
	if r.IsRemote() {
		return path.Base(r.url.Path)
	}
	return filepath.Base(r.url.Path)
}

// Returns the lower-cased file extension (including the leading dot).
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.url.Path))
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Create a new Resource data stream.
//
// Local paths are opened from disk; http and https URLs are fetched with
// the default http client. The caller must close the returned resource.
func NewResource(pathToResource string) (*Resource, error) {
	// Replace backslashes with forward slashes and try parsing as a URL
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// Treat windows drive letters as local paths
	if len(resURL.Scheme) == 1 {
		resURL = &url.URL{Path: pathToResource}
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(resURL.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(resURL.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", resURL.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, err := url.Parse(name)
	if err != nil {
		resURL = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}

package provider

import (
	"fmt"
	"net/url"
)

// New validates the url of the node and returns the provider.
// The supported protocols are http, https, ws and wss.
func New(rawUrl string) (Provider, error) {
	if len(rawUrl) == 0 {
		return Provider{}, fmt.Errorf("empty url or its missing")
	}

	if _, err := parse(rawUrl); err != nil {
		return Provider{}, err
	}

	return Provider{Url: rawUrl}, nil
}

func parse(rawUrl string) (*url.URL, error) {
	u, err := url.ParseRequestURI(rawUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid provider url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("invalid provider protocol. Expected either 'http', 'https', 'ws' or 'wss'. But given '%s'", u.Scheme)
	}
	if len(u.Host) == 0 {
		return nil, fmt.Errorf("provider url has no host")
	}

	return u, nil
}

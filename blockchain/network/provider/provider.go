package provider

import (
	"errors"
	"net/url"
	"strings"
)

// Provider is the Url wrapper to the remote
// blockchain node.
//
// The Provider is not responsible for connecting.
// Refer to blockchain/evm/client
type Provider struct {
	Url string `json:"url"`
}

// Redacted returns the url without the path.
// The path of the hosted node providers contains the api key.
func (p Provider) Redacted() string {
	return redact(p.Url)
}

func redact(rawUrl string) string {
	u, err := parse(rawUrl)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// redactedError keeps the original error for errors.Is and errors.As
type redactedError struct {
	message string
	err     error
}

func (e *redactedError) Error() string {
	return e.message
}

func (e *redactedError) Unwrap() error {
	return e.err
}

// RedactError removes the provider path from the error message.
//
// The http transport of go-ethereum returns *url.Error with the full url of the node,
// and that url has the api key.
func (p Provider) RedactError(err error) error {
	if err == nil {
		return nil
	}

	message := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		fullUrl := urlErr.URL
		urlErr.URL = redact(fullUrl)
		if len(fullUrl) > 0 {
			message = strings.ReplaceAll(message, fullUrl, urlErr.URL)
		}
	}
	if len(p.Url) > 0 {
		message = strings.ReplaceAll(message, p.Url, p.Redacted())
	}

	if message == err.Error() {
		return err
	}
	return &redactedError{message: message, err: err}
}

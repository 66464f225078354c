package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/eyetechsecurities/webforms/pkg/requestid"
)

// NewRequest converts an API Gateway proxy event into an *http.Request bound to ctx.
func NewRequest(ctx context.Context, ev events.APIGatewayProxyRequest) (*http.Request, error) {
	if ev.HTTPMethod == "" {
		return nil, fmt.Errorf("%w: missing HTTP method", ErrInvalidEvent)
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeBody, err)
		}
		body = decoded
	}

	path := ev.Path
	if path == "" {
		path = "/"
	}
	u := &url.URL{Path: path, RawQuery: query(ev).Encode()}

	r, err := http.NewRequestWithContext(ctx, ev.HTTPMethod, u.RequestURI(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	for k, v := range ev.Headers {
		r.Header.Set(k, v)
	}
	for k, values := range ev.MultiValueHeaders {
		r.Header.Del(k)
		for _, v := range values {
			r.Header.Add(k, v)
		}
	}

	r.Host = r.Header.Get("Host")
	if r.Host == "" {
		r.Host = ev.RequestContext.DomainName
	}
	r.URL.Host = r.Host
	r.RemoteAddr = ev.RequestContext.Identity.SourceIP
	r.RequestURI = u.RequestURI()
	r.ContentLength = int64(len(body))
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))

	if r.Header.Get(requestid.Header) == "" && ev.RequestContext.RequestID != "" {
		r.Header.Set(requestid.Header, ev.RequestContext.RequestID)
	}

	return r, nil
}

func query(ev events.APIGatewayProxyRequest) url.Values {
	q := make(url.Values, len(ev.QueryStringParameters))
	for k, v := range ev.QueryStringParameters {
		q.Set(k, v)
	}
	for k, values := range ev.MultiValueQueryStringParameters {
		q[k] = append([]string(nil), values...)
	}
	return q
}

// Package lambdaproxy serves API Gateway proxy events with an ordinary
// http.Handler, so the same router runs behind net/http and AWS Lambda.
//
//	adapter := lambdaproxy.New(router, lambdaproxy.WithLogger(log))
//	lambda.Start(adapter.Handle)
//
// Base64-encoded request bodies are decoded before the handler sees them.
// Multi-value headers and query parameters take precedence over their
// single-value counterparts. The API Gateway request ID is forwarded in the
// X-Request-ID header when the client did not send one.
//
// Responses with a textual content type are returned as-is; anything else is
// base64-encoded with IsBase64Encoded set.
package lambdaproxy

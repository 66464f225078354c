// Package requestid attaches a correlation identifier to every request.
//
// Middleware reuses a well-formed X-Request-ID header (the Lambda adapter
// fills it from the API Gateway request context) or generates a UUIDv4. The
// ID is stored in the request context, echoed in the response header and
// added to log records through LoggerExtractor.
package requestid

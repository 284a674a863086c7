// Package transport sends api payloads to a REDCap endpoint and turns replies
// into results or typed errors.
//
// Every call is one form-encoded POST (multipart for uploads) carrying the
// payload fields plus token and returnFormat=json. The payload is never
// modified; the extra fields are added to the outgoing copy only. Each call
// runs the same three stages: the status is classified, a decoder is chosen
// from the payload's declared format, and the body is decoded.
//
//	c, err := transport.New(url, token, transport.WithTimeout(30*time.Second))
//	res, err := c.Post(ctx, api.GetDAGs())
//	var dags []map[string]any
//	err = res.Decode(&dags)
//
// # Errors
//
// Any status other than 200 is returned as an *Error whose Kind follows the
// status code. Use errors.Is with ErrBadRequest, ErrUnauthorized and the other
// sentinels, or errors.As to read the status and message. A 400 carries the
// message from the body's error field.
//
// There is no retry. Cancellation and deadlines come from the caller's
// context and the HTTP client's timeout.
package transport

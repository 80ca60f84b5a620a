// Package timing provides a client for a time-tracking service's HTTP API.
//
// The client covers projects, time entries (including the running timer)
// and aggregate reports. Every call goes through the same pipeline:
//
//   - caller options are validated, then encoded with their camelCase keys
//     translated to the wire's snake_case (see package casing)
//   - successful bodies are unwrapped from the {"data": ...} envelope; the
//     returned values keep the service's snake_case field names
//   - failures that reached the transport are normalized into *APIError
//
// # Usage
//
// Create a client with your API token:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := timing.NewClient(
//		"your-api-token",
//		timing.WithLogger(logger),
//		timing.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	entry, err := client.TimeEntries.Start(ctx, timing.StartTimerOptions{
//		Project:         "/projects/123",
//		Title:           "Code review",
//		ReplaceExisting: timing.Bool(true),
//	})
//
// Endpoints without a typed method can be reached with Client.Request,
// which sends the body and query verbatim and decodes the whole response.
//
// # Concurrency
//
// A Client holds only configuration fixed at construction and may be used
// from any number of goroutines. Calls are independent; there is no retry,
// caching or rate limiting. Timeouts come from the HTTP client.
//
// # Error Handling
//
// Errors fall into two tiers:
//
//   - *APIError: the call reached the transport and failed. Status is the
//     HTTP status, or 500 when no response arrived. Message and Code come
//     from the service's error body when present. Err holds the original
//     *TransportError.
//   - anything else: raised before a request was sent (ErrMissingToken,
//     ErrMissingID, ErrInvalidOptions, encoding failures) and returned
//     unchanged.
//
//	if apiErr, ok := timing.AsAPIError(err); ok {
//		if apiErr.IsNotFound() {
//			// Handle missing resource
//		}
//	}
package timing

// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts external clients to the catalog and
// ledger services, translating HTTP concerns into business operations and
// the error taxonomy into status codes.
package api

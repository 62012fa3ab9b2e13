// Package endpoint resolves where each form kind is submitted, either from
// an OpenAPI 3 document (by operation ID) or from a single base URL.
package endpoint

// Package instance is the client for a federation instance's admin
// domain-block API.
//
// It covers four capabilities against /api/v1/admin/domain_blocks:
// fetching the full block list (cursor-paginated via the Link header),
// creating a block, updating a block by its remote id, and deleting a block
// by its remote id. Authentication is a bearer token per instance.
//
// # Pagination
//
// List responses carry a Link header of the shape
// `<next>; rel="next", <prev>; rel="prev"`. The parser is deliberately
// lenient: any header that does not match the exact two-part shape ends
// pagination instead of failing the fetch, tolerating non-standard or
// evolving cursor headers.
//
// # Errors
//
// Non-success responses surface as FetchError or WriteError, both carrying
// the HTTP status and response body for diagnosis. A 404 on delete is not
// an error; the block is already gone.
package instance

// Package feed serves published JSON feed files from object storage.
//
// The organization is taken from the request host: an exact custom domain
// match wins, otherwise the first label is used as subdomain, so
// "acme.example.com" resolves to the organization with subdomain "acme".
// Files live under "<organization urn>/<filename>" with
// "feeds/<organization urn>/<filename>" as fallback.
package feed

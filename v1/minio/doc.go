// Package minio stores and serves published product feed files from an
// S3-compatible bucket.
//
// Feeds live under one prefix per organization:
//
//	<organization-urn-suffix>/<filename>.json
//
// MinioClient.Get returns the object bytes with content type and ETag, and
// ErrObjectNotFound for missing keys so HTTP handlers can answer 404.
//
// Configuration: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY,
// MINIO_USE_SSL and MINIO_FEED_BUCKET. With MINIO_CREATE_BUCKET the bucket
// is created at startup; otherwise a missing bucket fails the start hook.
package minio

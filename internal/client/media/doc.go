// Package media uploads blog cover images to the backend's S3-compatible
// object storage and builds their public URLs.
package media

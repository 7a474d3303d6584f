// Package files groups the access layer for the tabular sources a run reads.
//
// Subpackages:
//   - filesystem: location-addressed readers for local files, in-memory
//     fixtures and S3 objects
package files

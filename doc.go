// Package uploadkit is a toolkit for secure file ingestion: accepting an
// untrusted upload, classifying its true content type, storing it under a
// fully controlled name and path, and neutralizing executable content in
// markup formats before the asset is served.
//
// The toolkit is organized as independent packages under pkg/:
//
//   - pkg/intake: the ingestion pipeline (stage, classify, sanitize, finalize)
//   - pkg/storagepath: storage-root containment and path resolution
//   - pkg/namegen: collision-resistant storage name generation
//   - pkg/sniff: signature-based content classification
//   - pkg/svgsanitize: allow-list SVG rewriting
//   - pkg/quota: per-identity upload frequency gate
//   - pkg/config, pkg/logger: env configuration and structured logging
package uploadkit

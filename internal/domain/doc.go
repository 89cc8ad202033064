// Package domain contains the core entities and value objects of distclient.
//
// This package is the innermost layer. It has no dependencies on HTTP,
// storage or logging and contains only data shapes and the rules that can
// be checked without I/O.
//
// # Entities
//
//   - [Session]: the persisted authentication state (bearer token + flag)
//   - [Partner], [Product], [Operation], [DashboardSummary]: read-only
//     projections of backend rows
//   - [DashboardQuery], [PartnerQuery], [ProductQuery], [OperationQuery]:
//     caller-facing filter parameters with a pagination [Cursor]
//
// # Errors
//
// The error taxonomy ([ValidationError], [AuthError], [HTTPError],
// [TransportError], [StorageError]) lives in errors.go and supports
// errors.Is / errors.As.
package domain

// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [SessionRepository]: persists and loads the session (file, sqlite, redis)
//   - [SessionWatcher]: notifies when the session was changed by another process
//   - [AuthAPI], [DashboardAPI], [PartnerAPI], [ProductAPI], [OperationAPI]:
//     typed backend endpoints, implemented by internal/adapters/http
//
// # Usage
//
// Repositories and the session store depend only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them, which lets
// tests substitute in-memory fakes and count network calls.
package ports

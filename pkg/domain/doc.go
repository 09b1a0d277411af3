// Package domain contains the core entities shared across the application:
// check runs, per-checker results, and the diagnostics external tools report.
// These types are intentionally free of infrastructure concerns so they can
// be shared across packages.
package domain

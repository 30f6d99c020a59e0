// Package migrations holds the storefront schema. Each file registers its
// migrations from init(); importing this package for side effects makes
// them available to the migration runner.
package migrations

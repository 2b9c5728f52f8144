// ABOUTME: Version constants
// ABOUTME: Product identification for logs and user agents
package version

const (
	Version = "0.1.0"
	Product = "Wayfarer"
)

// Package platform contains OS integration: the default group directory,
// filesystem helpers and revealing files in the system file manager.
package platform

// Package transport defines the remote shell and file-transfer collaborator
// the node-provisioning core talks to managed nodes through.
//
// A Transport executes scripts and moves byte streams over an established
// Connection; a ConnectionFactory dials connections per call. Connections are
// acquired, used, and released per call, never held across calls.
//
// The default implementation lives in the ssh subpackage.
package transport

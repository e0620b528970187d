// Package client provides low-level clients for reaching managed nodes.
//
// This package contains the connection-oriented plumbing the service layer
// builds on:
//
//   - transport: Remote execution and file-transfer collaborator interface
//     with its testify mocks
//   - transport/ssh: Default SSH/SFTP implementation of the transport
//
// Clients here carry no provisioning semantics; they move scripts and bytes
// and report exit codes.
package client

// Package commands defines the did wallet CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Create (or recover with --mnemonic) the wallet identity
//   - doc            Print the wallet's DID document
//   - did            Print the DID of a connection (default self)
//   - connect        Name a peer DID
//   - dids           List connections
//   - write          Encrypt a message to a connection
//   - read           Decrypt a message
//   - hold           Store a received envelope
//   - messages       List stored messages
//   - message        Print a stored message envelope
//   - issue          Issue a credential to a connection
//   - present        Present a held credential to a verifier
//   - verify         Verify a received presentation
//   - credentials    List stored credentials
//   - credential     Print a stored credential
//   - presentations  List stored presentations
//   - presentation   Print a stored presentation
//   - seed           Print the identity seed as a BIP39 mnemonic
//   - fingerprint    Print the identity fingerprint
//
// # Implementation
//
// The root command loads the wallet config and builds the dependency graph
// (stores, codec, proof suite, services) before any subcommand runs. Envelopes
// are printed to stdout as single-line JSON ("dcem") tokens; a missing
// trailing argument is read from stdin so commands can be piped together.
// Logs go to stderr.
//
// Exit status is 0 on success, 1 for usage and configuration errors and 2
// when an operation fails, including a presentation that does not verify.
package commands

// Package message writes, reads and keeps encrypted messages.
//
// Envelopes are opaque tokens handed to and from the caller; there is no
// transport. Written messages keep a self-sealed copy under messages/. Held
// envelopes are filed by the type of their decrypted body.
package message

// Package connection maps human aliases to peer DIDs.
package connection

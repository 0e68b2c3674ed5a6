// Package credential issues verifiable credentials and reads held ones.
package credential

// Package domain defines core data models and interfaces shared across the wallet.
// It contains plain types (wire/state), the error taxonomy and contracts
// (interfaces) only.
package domain

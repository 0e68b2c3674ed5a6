package log

import (
	"go.uber.org/zap"
)

// Log Fields.
const (
	FieldMessageID = "messageID"
	FieldDID       = "did"
	FieldAlias     = "alias"
	FieldPath      = "path"
	FieldKind      = "kind"
	FieldCommand   = "command"
	FieldStatus    = "status"
	FieldSecurity  = "security"
	FieldReason    = "reason"
)

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

// WithMessageID sets the message id field.
func WithMessageID(id string) zap.Field {
	return zap.String(FieldMessageID, id)
}

// WithDID sets the DID field.
func WithDID(did string) zap.Field {
	return zap.String(FieldDID, did)
}

// WithAlias sets the connection alias field.
func WithAlias(alias string) zap.Field {
	return zap.String(FieldAlias, alias)
}

// WithPath sets the path field.
func WithPath(path string) zap.Field {
	return zap.String(FieldPath, path)
}

// WithKind sets the record kind field.
func WithKind(kind string) zap.Field {
	return zap.String(FieldKind, kind)
}

// WithCommand sets the command field.
func WithCommand(command string) zap.Field {
	return zap.String(FieldCommand, command)
}

// WithStatus sets the status field.
func WithStatus(status string) zap.Field {
	return zap.String(FieldStatus, status)
}

// WithSecurityEvent marks an entry as security relevant.
func WithSecurityEvent() zap.Field {
	return zap.Bool(FieldSecurity, true)
}

// WithReason sets the reason field.
func WithReason(reason string) zap.Field {
	return zap.String(FieldReason, reason)
}

package utils

import "errors"

var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrorRowNotDeletable = errors.New("only blank rows can be deleted")
	ErrorInvalidEmail    = errors.New("invalid email address")

	ErrorEmptyMessageBody = errors.New("message body is empty")
	ErrorDatabaseNotReady = errors.New("database connection not ready")
)

package command

import "errors"

// Sentinel errors for the command registry.
var (
	ErrNotFound      = errors.New("command not found")
	ErrAlreadyExists = errors.New("command already registered")
	ErrEmptyName     = errors.New("command name is empty")
	ErrUsage         = errors.New("wrong number of arguments")
	ErrEmptyLine     = errors.New("empty command line")
)

// Package cli provides the CLI service for the account eraser.
package cli

import (
	"github.com/database-playground/account-eraser/internal/accountdata"
)

// Context is the context for the CLI.
type Context struct {
	deleter *accountdata.Deleter
}

// NewContext creates a new Context.
func NewContext(deleter *accountdata.Deleter) *Context {
	return &Context{
		deleter: deleter,
	}
}

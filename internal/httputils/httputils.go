// Package httputils provides utilities for HTTP requests.
package httputils

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

type httputilsContextKey string

const (
	// contextKeyMachine is the key for the machine name in the context.
	contextKeyMachine httputilsContextKey = "httputils:machine"
)

// UnknownMachine is reported when no machine name was recorded.
const UnknownMachine = "unknown"

// maxMachineNameLength caps the User-Agent kept as the machine name.
const maxMachineNameLength = 256

// WithMachineName puts the machine name into the context.
func WithMachineName(ctx context.Context, machine string) context.Context {
	machine = strings.TrimSpace(machine)
	if len(machine) > maxMachineNameLength {
		cut := maxMachineNameLength
		for cut > 0 && !utf8.RuneStart(machine[cut]) {
			cut--
		}
		machine = machine[:cut]
	}

	return context.WithValue(ctx, contextKeyMachine, machine)
}

// MachineMiddleware puts the User-Agent header into the context.
func MachineMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithMachineName(c.Request.Context(), c.GetHeader("User-Agent")))
		c.Next()
	}
}

// GetMachineName returns the machine name from the context.
func GetMachineName(ctx context.Context) string {
	if machine, ok := ctx.Value(contextKeyMachine).(string); ok && machine != "" {
		return machine
	}

	return UnknownMachine
}

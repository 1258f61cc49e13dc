// Package pkg holds the identity of the luastd command.
package pkg

// Version is the release of the luastd command, replaced at build time with
//
//	-ldflags "-X github.com/ardnew/luastd/pkg.Version=v1.2.3"
var Version = "devel"

const (
	// Name is the command name. It appears in help text and names the
	// configuration directory and file.
	Name = "luastd"
	// Description is a short summary of the command used in help output.
	Description = "Inspect and query Lua standard library definitions"
)

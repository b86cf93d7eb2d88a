package controller

import (
	"context"
	"io"

	"learnhub_client/internal/util"

	"github.com/spf13/pflag"
)

// Context carries one command invocation, the CLI counterpart of a request.
type Context struct {
	context.Context
	Command string
	Args    []string
	Out     io.Writer

	flags *pflag.FlagSet
}

type HandlerFunc func(c *Context)

func NewContext(ctx context.Context, command string, args []string, out io.Writer) *Context {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return &Context{Context: ctx, Command: command, Args: args, Out: out, flags: fs}
}

// Flags is where handlers declare their options before calling Bind.
func (c *Context) Flags() *pflag.FlagSet {
	return c.flags
}

// Bind parses the declared flags and checks that at least minArgs positional arguments remain.
// On failure it has already written the error result.
func (c *Context) Bind(minArgs int, usage string) bool {
	if err := c.flags.Parse(c.Args); err != nil {
		c.BadRequest(err.Error())
		return false
	}
	if c.flags.NArg() < minArgs {
		c.BadRequest("usage: " + c.Command + " " + usage)
		return false
	}
	return true
}

func (c *Context) Arg(i int) string {
	return c.flags.Arg(i)
}

func (c *Context) NArg() int {
	return c.flags.NArg()
}

func (c *Context) JSON(data interface{}, err error) {
	util.WriteResult(c.Out, util.NewResult(data, err))
}

func (c *Context) Success(data interface{}) {
	c.JSON(data, nil)
}

func (c *Context) Error(err error) {
	c.JSON(nil, err)
}

func (c *Context) BadRequest(msg string) {
	c.Error(util.NewValidationError(util.FieldError{Field: "args", Error: msg}))
}

func (c *Context) Forbidden() {
	c.Error(util.ErrPermissionDenied)
}

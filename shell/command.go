package shell

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/common"
)

type command struct {
	name string
	args []string
	// quit stops the worker after the commands queued before it.
	quit bool
}

var errUsage = errors.New("usage")

// parse splits a line into a command. Blank lines and # comments yield nil.
func parse(line string) *command {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	cmd := &command{name: strings.ToLower(fields[0]), args: fields[1:]}
	if cmd.name == "quit" || cmd.name == "exit" {
		cmd.quit = true
	}
	return cmd
}

func (c *command) arity(min, max int) error {
	if len(c.args) < min || len(c.args) > max {
		return errors.Wrapf(errUsage, "%s takes %d to %d arguments, got %d", c.name, min, max, len(c.args))
	}
	return nil
}

// ints parses args[from:from+n] as integers.
func (c *command) ints(from, n int) ([]int, error) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(c.args[from+i])
		if err != nil {
			return nil, errors.Wrapf(common.ErrInvalidCoordinate, "%q is not an integer", c.args[from+i])
		}
		out[i] = v
	}
	return out, nil
}

func (c *command) arg(i int) string {
	if i < len(c.args) {
		return c.args[i]
	}
	return ""
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"go.viam.com/manifold/config"
)

// SchemaAction is the corresponding action for 'schema'.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(config.JobSchema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}

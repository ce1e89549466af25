package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/cmdline"
)

// mustGetString is a helper that panics if the flag doesn't exist (programming error).
func mustGetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %q not defined: %v", name, err))
	}
	return v
}

// mustGetBool is a helper that panics if the flag doesn't exist (programming error).
func mustGetBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag %q not defined: %v", name, err))
	}
	return v
}

func mustGetInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag %q not defined: %v", name, err))
	}
	return v
}

// stringValue is absent unless the flag was given, so --message "" still
// reaches knowledge_repo as an empty message.
func stringValue(cmd *cobra.Command, name string) cmdline.Value {
	if !cmd.Flags().Changed(name) {
		return cmdline.Absent()
	}
	return cmdline.String(mustGetString(cmd, name))
}

func intValue(cmd *cobra.Command, name string) cmdline.Value {
	if !cmd.Flags().Changed(name) {
		return cmdline.Absent()
	}
	return cmdline.Int(mustGetInt(cmd, name))
}

func switchValue(cmd *cobra.Command, name string) cmdline.Value {
	return cmdline.Switch(mustGetBool(cmd, name))
}

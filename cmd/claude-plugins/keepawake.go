package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mintuz/claude-plugins/pkg/keepawake"
	"github.com/mintuz/claude-plugins/pkg/logger"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

var keepawakeCmd = &cobra.Command{
	Use:   "keepawake",
	Short: "Control the session sleep inhibitor",
	Long: `Start and stop the system sleep inhibitor used by the session hooks. The
inhibitor's PID is tracked in a file under the system temp directory so a
later stop (or a restart) can find and terminate it.

Both start and stop always exit 0 so a failure here never breaks the hook
chain that invokes them.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// newInhibitor builds the inhibitor from the keepawake.* viper keys, so an
// alternate command (e.g. systemd-inhibit on Linux) or timeout can be set
// through flags, environment, or the config file.
func newInhibitor() *keepawake.Inhibitor {
	var opts []keepawake.Option
	if timeout := viper.GetDuration("keepawake.timeout"); timeout > 0 {
		opts = append(opts, keepawake.WithTimeout(timeout))
	}
	if commandLine := strings.Fields(viper.GetString("keepawake.command")); len(commandLine) > 0 {
		opts = append(opts, keepawake.WithCommand(commandLine[0], commandLine[1:]...))
	}
	return keepawake.New(opts...)
}

var keepawakeStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sleep inhibitor",
	Run: func(cmd *cobra.Command, _ []string) {
		inhibitor := newInhibitor()
		if err := inhibitor.Start(cmd.Context()); err != nil {
			// Exit 0 regardless so the invoking hook chain keeps going
			logger.G(cmd.Context()).WithError(err).Warn("failed to start sleep inhibitor")
			return
		}
		pid, _ := inhibitor.Status()
		presenter.Success(fmt.Sprintf("Sleep inhibitor started (pid %d)", pid))
	},
}

var keepawakeStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the sleep inhibitor",
	Run: func(cmd *cobra.Command, _ []string) {
		inhibitor := newInhibitor()
		if err := inhibitor.Stop(cmd.Context()); err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("failed to stop sleep inhibitor")
			return
		}
		presenter.Success("Sleep inhibitor stopped")
	},
}

var keepawakeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the sleep inhibitor is running",
	Run: func(_ *cobra.Command, _ []string) {
		inhibitor := newInhibitor()
		if pid, running := inhibitor.Status(); running {
			presenter.Info(fmt.Sprintf("Sleep inhibitor is running (pid %d)", pid))
		} else {
			presenter.Info("Sleep inhibitor is not running")
		}
	},
}

func init() {
	keepawakeCmd.PersistentFlags().String("command", "", `Inhibitor command line (default "caffeinate -dims -t <timeout seconds>")`)
	keepawakeCmd.PersistentFlags().Duration("timeout", keepawake.DefaultTimeout, "Inhibitor lifetime for the default command")
	viper.BindPFlag("keepawake.command", keepawakeCmd.PersistentFlags().Lookup("command"))
	viper.BindPFlag("keepawake.timeout", keepawakeCmd.PersistentFlags().Lookup("timeout"))

	keepawakeCmd.AddCommand(keepawakeStartCmd)
	keepawakeCmd.AddCommand(keepawakeStopCmd)
	keepawakeCmd.AddCommand(keepawakeStatusCmd)
}

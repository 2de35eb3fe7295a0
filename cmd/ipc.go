package cmd

import (
	"fmt"

	"github.com/frostyard/forgeexec/internal/ipc"
	"github.com/frostyard/forgeexec/internal/runner"
	"github.com/spf13/cobra"
)

var ipcCmd = &cobra.Command{
	Use:   "ipc",
	Short: "Relay forge cheatcode calls to a running program",
}

var ipcInitCmd = &cobra.Command{
	Use:   "init PROGRAM [ARGS...]",
	Short: "Start PROGRAM and print its ABI-encoded socket name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := ipc.Init(cmd.Context(), &runner.SystemRunner{}, ipc.NewClient(logger), args[0], args[1:])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var ipcExecCmd = &cobra.Command{
	Use:   "exec SOCKET DATA",
	Short: "Send a response to the program and print its next request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := ipc.Exec(cmd.Context(), ipc.NewClient(logger), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), req)
		return nil
	},
}

var ipcTerminateCmd = &cobra.Command{
	Use:   "terminate SOCKET [MESSAGE]",
	Short: "Tell the program forge is done",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var message string
		if len(args) > 1 {
			message = args[1]
		}
		if err := ipc.Terminate(cmd.Context(), ipc.NewClient(logger), args[0], message); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), "0x")
		return nil
	},
}

var ipcConnectCmd = &cobra.Command{
	Use:    "connect SOCKET",
	Short:  "Wait until the program's socket accepts connections",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ipc.Connect(cmd.Context(), ipc.NewClient(logger), args[0])
	},
}

func init() {
	// Everything after PROGRAM belongs to PROGRAM.
	ipcInitCmd.Flags().SetInterspersed(false)

	ipcCmd.AddCommand(ipcInitCmd)
	ipcCmd.AddCommand(ipcExecCmd)
	ipcCmd.AddCommand(ipcTerminateCmd)
	ipcCmd.AddCommand(ipcConnectCmd)
	rootCmd.AddCommand(ipcCmd)
}

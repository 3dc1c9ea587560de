package command

import (
	commandHandler "medcard/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewMaintenanceHandler)

type Command struct {
	maintenanceHandler *commandHandler.MaintenanceHandler
}

// NewCommand .
func NewCommand(
	maintenanceHandler *commandHandler.MaintenanceHandler,
) *Command {
	return &Command{
		maintenanceHandler: maintenanceHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	run := func(action func(command *Command) func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return action(command)(cmd, args)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "ensure-indexes",
			Short: "create MongoDB indexes for profiles, events and view logs",
			RunE: run(func(command *Command) func(*cobra.Command, []string) error {
				return command.maintenanceHandler.EnsureIndexes
			}),
		},
		&cobra.Command{
			Use:   "sync-profiles",
			Short: "refresh one batch of stale VK names and photos",
			RunE: run(func(command *Command) func(*cobra.Command, []string) error {
				return command.maintenanceHandler.SyncProfiles
			}),
		},
	)
}

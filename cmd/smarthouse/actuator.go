package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setActuatorCmd = &cobra.Command{
	Use:       "set-actuator <actuator-id> on|off",
	Short:     "Switch an actuator and persist its state",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[1] {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("invalid state %q: want on or off", args[1])
		}

		return withApp(cmd, func(ctx context.Context, a *app) error {
			house, err := a.loadHouse(ctx)
			if err != nil {
				return err
			}
			actuator := house.Actuator(args[0])
			if actuator == nil {
				return fmt.Errorf("actuator %q not found", args[0])
			}

			if on {
				actuator.TurnOn()
			} else {
				actuator.TurnOff()
			}
			if err := a.repo.UpdateActuatorState(ctx, actuator); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", actuator.ID, onOff(actuator.IsActive()))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setActuatorCmd)
}

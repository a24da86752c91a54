package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/smarthouse-core/internal/smarthouse"
)

var latestCmd = &cobra.Command{
	Use:   "latest <sensor-id>",
	Short: "Print the most recent reading of a sensor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			sensor, err := findSensor(ctx, a, args[0])
			if err != nil {
				return err
			}

			m, ok, err := a.repo.LatestReading(ctx, sensor)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no readings\n", sensor.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", sensor.ID, m)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <sensor-id>",
	Short: "Print every stored reading of a sensor in insertion order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			sensor, err := findSensor(ctx, a, args[0])
			if err != nil {
				return err
			}

			if _, err := a.repo.LoadHistory(ctx, sensor); err != nil {
				return err
			}
			for _, m := range sensor.Measurements() {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(historyCmd)
}

// findSensor loads the house and returns the sensor with the given id.
func findSensor(ctx context.Context, a *app, id string) (*smarthouse.Sensor, error) {
	house, err := a.loadHouse(ctx)
	if err != nil {
		return nil, err
	}
	sensor := house.Sensor(id)
	if sensor == nil {
		return nil, fmt.Errorf("sensor %q not found", id)
	}
	return sensor, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/smarthouse-core/internal/smarthouse"
)

var avgTempOpts struct {
	from  string
	until string
}

var avgTempCmd = &cobra.Command{
	Use:   "avg-temp <room>",
	Short: "Print the average temperature per day in a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			room, err := findRoom(ctx, a, args[0])
			if err != nil {
				return err
			}

			averages, err := a.repo.AverageTemperatures(ctx, room, avgTempOpts.from, avgTempOpts.until)
			if err != nil {
				return err
			}
			if len(averages) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no temperature readings\n", room.Name)
				return nil
			}
			for _, avg := range averages {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %.2f %s\n", avg.Date, avg.Celsius, smarthouse.UnitCelsius)
			}
			return nil
		})
	},
}

var humidHoursCmd = &cobra.Command{
	Use:   "humid-hours <room> <date>",
	Short: "Print the hours of a day with more than three above-average humidity readings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			room, err := findRoom(ctx, a, args[0])
			if err != nil {
				return err
			}

			hours, err := a.repo.HoursWithHumidityAbove(ctx, room, args[1])
			if err != nil {
				return err
			}
			if len(hours) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no qualifying hours on %s\n", room.Name, args[1])
				return nil
			}
			for _, hour := range hours {
				fmt.Fprintf(cmd.OutOrStdout(), "%02d:00\n", hour)
			}
			return nil
		})
	},
}

func init() {
	avgTempCmd.Flags().StringVar(&avgTempOpts.from, "from", "", "first day to include (YYYY-MM-DD)")
	avgTempCmd.Flags().StringVar(&avgTempOpts.until, "until", "", "last day to include (YYYY-MM-DD)")

	rootCmd.AddCommand(avgTempCmd)
	rootCmd.AddCommand(humidHoursCmd)
}

// findRoom loads the house and returns the room with the given name.
func findRoom(ctx context.Context, a *app, name string) (*smarthouse.Room, error) {
	house, err := a.loadHouse(ctx)
	if err != nil {
		return nil, err
	}
	room := house.Room(name)
	if room == nil {
		return nil, fmt.Errorf("room %q not found", name)
	}
	return room, nil
}

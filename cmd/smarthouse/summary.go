package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nerrad567/smarthouse-core/internal/smarthouse"
)

var summaryAsJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the floors, rooms and devices of the house",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			house, err := a.loadHouse(ctx)
			if err != nil {
				return err
			}
			if summaryAsJSON {
				return writeSummaryJSON(cmd.OutOrStdout(), house)
			}
			writeSummary(cmd.OutOrStdout(), house)
			return nil
		})
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryAsJSON, "json", false, "print the house as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func writeSummary(w io.Writer, house *smarthouse.House) {
	fmt.Fprintf(w, "%s: %d floors, %d rooms, %d devices, %.1f m²\n",
		house.Name, len(house.Floors()), len(house.Rooms()), len(house.Devices()), house.TotalArea())

	for _, floor := range house.Floors() {
		fmt.Fprintf(w, "Floor %d\n", floor.Level)
		for _, room := range floor.Rooms() {
			fmt.Fprintf(w, "  %s (%.1f m²)\n", room.Name, room.Area)
			for _, d := range room.Devices() {
				info := d.Info()
				line := fmt.Sprintf("    %-16s %-9s %s", info.ID, d.Category(), info.Kind)
				if a, ok := d.(*smarthouse.Actuator); ok {
					line += " [" + onOff(a.IsActive()) + "]"
				}
				fmt.Fprintln(w, line)
			}
		}
	}
}

type deviceView struct {
	ID       string              `json:"id"`
	Category smarthouse.Category `json:"category"`
	Kind     string              `json:"kind"`
	Supplier string              `json:"supplier"`
	Product  string              `json:"product"`
	On       *bool               `json:"on,omitempty"`
}

type roomView struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Area    float64      `json:"area"`
	Devices []deviceView `json:"devices"`
}

type floorView struct {
	Level int        `json:"level"`
	Rooms []roomView `json:"rooms"`
}

type houseView struct {
	Name   string      `json:"name"`
	Floors []floorView `json:"floors"`
}

func writeSummaryJSON(w io.Writer, house *smarthouse.House) error {
	view := houseView{Name: house.Name, Floors: []floorView{}}
	for _, floor := range house.Floors() {
		fv := floorView{Level: floor.Level, Rooms: []roomView{}}
		for _, room := range floor.Rooms() {
			rv := roomView{ID: room.ID, Name: room.Name, Area: room.Area, Devices: []deviceView{}}
			for _, d := range room.Devices() {
				info := d.Info()
				dv := deviceView{
					ID:       info.ID,
					Category: d.Category(),
					Kind:     info.Kind,
					Supplier: info.Supplier,
					Product:  info.Product,
				}
				if a, ok := d.(*smarthouse.Actuator); ok {
					on := a.IsActive()
					dv.On = &on
				}
				rv.Devices = append(rv.Devices, dv)
			}
			fv.Rooms = append(fv.Rooms, rv)
		}
		view.Floors = append(view.Floors, fv)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/smarthouse-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/smarthouse-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/smarthouse-core/internal/telemetry"
)

// errNoSinks is returned by export when neither InfluxDB nor MQTT is enabled.
var errNoSinks = errors.New("nothing to export to: enable influxdb or mqtt in the configuration")

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sensor histories to InfluxDB and actuator states to MQTT",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if !a.cfg.InfluxDB.Enabled && !a.cfg.MQTT.Enabled {
				return errNoSinks
			}

			house, err := a.loadHouse(ctx)
			if err != nil {
				return err
			}

			var writer telemetry.MeasurementWriter
			if a.cfg.InfluxDB.Enabled {
				influx, err := influxdb.Connect(ctx, a.cfg.InfluxDB)
				if err != nil {
					return fmt.Errorf("connecting to influxdb: %w", err)
				}
				defer influx.Close()
				influx.SetOnError(func(err error) {
					a.log.Error("influxdb write failed", "error", err)
				})
				writer = influx
				a.log.Info("influxdb connected", "url", a.cfg.InfluxDB.URL, "bucket", a.cfg.InfluxDB.Bucket)
			}

			var publisher telemetry.StatePublisher
			if a.cfg.MQTT.Enabled {
				client, err := mqtt.Connect(ctx, a.cfg.MQTT)
				if err != nil {
					return fmt.Errorf("connecting to mqtt: %w", err)
				}
				defer client.Close()
				client.SetLogger(a.log)
				publisher = client
				a.log.Info("mqtt connected", "host", a.cfg.MQTT.Broker.Host, "port", a.cfg.MQTT.Broker.Port)
			}

			exporter := telemetry.New(a.repo, writer, publisher)
			exporter.SetLogger(a.log)

			res, err := exporter.Export(ctx, house)
			if err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"exported %d readings from %d sensors (%d skipped), %d states written, %d states published\n",
				res.Readings, res.Sensors, res.SkippedReadings, res.StatesWritten, res.StatesPublished)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// Package smarthouse provides the smart house device registry and its SQLite
// persistence.
//
// The in-memory model is a tree rooted at House:
//
//	House
//	 └── Floor (by level)
//	      └── Room (name unique within the house)
//	           └── Device (Sensor | Actuator)
//	                └── Measurement (Sensor only, append-only)
//
// SQLiteRepository maps that tree to the relational schema in the schema
// package (rooms, devices, measurements, actuator_state) and computes the
// measurement statistics.
//
// # Usage
//
//	repo, err := smarthouse.OpenSQLiteRepository(ctx, database.Config{Path: "house.db"})
//	if err != nil {
//	    return err
//	}
//	defer repo.Close()
//
//	house, err := repo.LoadHouse(ctx)
//	if err != nil {
//	    return err
//	}
//
//	sensor := house.Sensors()[0]
//	if m, ok, err := repo.LatestReading(ctx, sensor); err == nil && ok {
//	    fmt.Println(m.Value, m.Unit)
//	}
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A House and a
// SQLiteRepository belong to one goroutine.
package smarthouse

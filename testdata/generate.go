// Generate writes sample Parquet files for trying out mocha import:
//
//	go run ./testdata/generate.go
//	mocha import testdata/persons.parquet --table Persons
//	mocha import "testdata/orders-*.parquet" --table Orders
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
)

type person struct {
	ID      int64   `parquet:"id"`
	Name    string  `parquet:"name"`
	Age     int32   `parquet:"age"`
	Active  bool    `parquet:"active"`
	Balance float64 `parquet:"balance"`
	City    *string `parquet:"city,optional"`
}

type order struct {
	ID      int64     `parquet:"id"`
	Person  int64     `parquet:"person"`
	Placed  time.Time `parquet:"placed,timestamp(millisecond)"`
	Items   []string  `parquet:"items,list"`
	Address struct {
		Street string `parquet:"street"`
		City   string `parquet:"city"`
	} `parquet:"address"`
}

func write[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func main() {
	log := zap.Must(zap.NewDevelopment()).Sugar()
	defer func() { _ = log.Sync() }()

	dir := "testdata"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	oslo, lima := "Oslo", "Lima"
	persons := []person{
		{ID: 1, Name: "alice", Age: 30, Active: true, Balance: 95.5, City: &oslo},
		{ID: 2, Name: "bob", Age: 25, Balance: -12.25},
		{ID: 3, Name: "charlie", Age: 35, Active: true, Balance: 88.7, City: &lima},
		{ID: 4, Name: "diana", Age: 28, Active: true, Balance: 0},
		{ID: 5, Name: "eve", Age: 42, Balance: 1000},
	}
	if err := write(filepath.Join(dir, "persons.parquet"), persons); err != nil {
		log.Fatalw("write persons", "error", err)
	}

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for month := 1; month <= 2; month++ {
		var orders []order
		for i := 0; i < 3; i++ {
			o := order{
				ID:     int64(month*100 + i),
				Person: int64(i%len(persons) + 1),
				Placed: base.AddDate(0, month-1, i),
				Items:  []string{"coffee", fmt.Sprintf("cake-%d", i)},
			}
			o.Address.Street = fmt.Sprintf("Main St %d", i+1)
			o.Address.City = oslo
			orders = append(orders, o)
		}
		path := filepath.Join(dir, fmt.Sprintf("orders-2024-%02d.parquet", month))
		if err := write(path, orders); err != nil {
			log.Fatalw("write orders", "path", path, "error", err)
		}
	}

	log.Infow("sample files generated", "dir", dir)
}

// seed_dataset.go loads a CSV file into a Frontier dataset through the API.
//
// Usage:
//
//	go run scripts/seed_dataset.go -csv runs.csv -x cost -y accuracy -name runs -api http://localhost:8700
//
// Every other column is kept as the row payload returned with frontier points.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
)

type dataPoint struct {
	X   float64                `json:"x"`
	Y   float64                `json:"y"`
	Row map[string]interface{} `json:"row,omitempty"`
}

type dataset struct {
	Name   string      `json:"name"`
	XLabel string      `json:"x_label,omitempty"`
	YLabel string      `json:"y_label,omitempty"`
	Points []dataPoint `json:"points"`
}

func main() {
	csvPath := flag.String("csv", "data.csv", "path to CSV file with a header row")
	xCol := flag.String("x", "x", "column holding x values")
	yCol := flag.String("y", "y", "column holding y values")
	name := flag.String("name", "", "dataset name (defaults to the file name)")
	apiURL := flag.String("api", "http://localhost:8700", "Frontier API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print points without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		log.Fatalf("read header: %v", err)
	}
	xi, yi := -1, -1
	for i, h := range header {
		switch h {
		case *xCol:
			xi = i
		case *yCol:
			yi = i
		}
	}
	if xi < 0 || yi < 0 {
		log.Fatalf("columns %q and %q must both be in the header %v", *xCol, *yCol, header)
	}

	ds := dataset{Name: *name, XLabel: *xCol, YLabel: *yCol}
	if ds.Name == "" {
		ds.Name = *csvPath
	}
	skipped := 0
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("line %d: %v", line, err)
		}
		x, errX := strconv.ParseFloat(rec[xi], 64)
		y, errY := strconv.ParseFloat(rec[yi], 64)
		if errX != nil || errY != nil {
			log.Printf("skip line %d: non-numeric x or y", line)
			skipped++
			continue
		}
		row := make(map[string]interface{}, len(rec))
		for i, v := range rec {
			if i == xi || i == yi {
				continue
			}
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				row[header[i]] = n
			} else {
				row[header[i]] = v
			}
		}
		ds.Points = append(ds.Points, dataPoint{X: x, Y: y, Row: row})
	}

	log.Printf("parsed %d points from %s (%d skipped)", len(ds.Points), *csvPath, skipped)

	if *dryRun {
		for i, p := range ds.Points {
			fmt.Printf("[%d] x=%g y=%g row=%v\n", i, p.X, p.Y, p.Row)
		}
		return
	}

	body, _ := json.Marshal(ds)
	req, err := http.NewRequest("POST", *apiURL+"/api/v1/datasets", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", *clientID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("post dataset: %v", err)
	}
	defer resp.Body.Close()

	var created struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create failed: status %d: %s", resp.StatusCode, created.Error)
	}
	log.Printf("done: dataset %s created", created.ID)
}

package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ledfx/internal/storage"
)

type Data struct {
	Recording  storage.Metadata `json:"recording"`
	Ticks      []int            `json:"ticks"`
	Alive      []int            `json:"alive"`
	Brightness []float64        `json:"brightness"`
	Coverage   []float64        `json:"coverage"`
}

func newData(meta storage.Metadata, samples []storage.Sample) Data {
	d := Data{
		Recording:  meta,
		Ticks:      make([]int, len(samples)),
		Alive:      make([]int, len(samples)),
		Brightness: make([]float64, len(samples)),
		Coverage:   make([]float64, len(samples)),
	}
	for i, s := range samples {
		d.Ticks[i] = s.Tick
		d.Alive[i] = s.Alive
		d.Brightness[i] = s.Brightness
		d.Coverage[i] = s.Coverage
	}
	return d
}

// WriteJSON writes a recording as column arrays.
func WriteJSON(w io.Writer, meta storage.Metadata, samples []storage.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newData(meta, samples))
}

func ExportJSON(path string, meta storage.Metadata, samples []storage.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, samples)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile = "metadata.json"
	statsFile    = "stats.csv"
	framesFile   = "frames.gif"
)

var ErrNoFrames = errors.New("storage: recording has no frames")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string             `json:"id"`
	Effect    string             `json:"effect"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Interval  time.Duration      `json:"interval"`
	Ticks     int                `json:"ticks"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a recording and returns its id. meta.ID, Timestamp, Ticks and
// Frames are filled in.
func (s *Store) Save(meta Metadata, rec *Recorder) (string, error) {
	meta.Timestamp = time.Now()
	runDir, id, err := s.newRunDir(meta.Effect, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = id
	meta.Ticks = len(rec.Samples)
	meta.Frames = len(rec.Frames)

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStats(filepath.Join(runDir, statsFile), rec.Samples); err != nil {
		return "", err
	}
	if len(rec.Frames) > 0 {
		if err := writeGIF(filepath.Join(runDir, framesFile), rec.Frames, meta.Interval*time.Duration(max(rec.FrameEvery, 1))); err != nil {
			return "", err
		}
	}
	return id, nil
}

// newRunDir creates <base>/<effect>_<unix>, adding a counter when two
// recordings land in the same second.
func (s *Store) newRunDir(effect string, at time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", effect, at.Unix())
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, id, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStats(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"tick", "alive", "brightness", "coverage"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Tick),
			strconv.Itoa(s.Alive),
			strconv.FormatFloat(s.Brightness, 'f', 4, 64),
			strconv.FormatFloat(s.Coverage, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeGIF(path string, frames []*image.RGBA, delay time.Duration) error {
	anim := &gif.GIF{LoopCount: 0}
	cs := int(delay / (10 * time.Millisecond))
	if cs < 2 {
		cs = 2
	}
	for _, fr := range frames {
		p := image.NewPaletted(fr.Bounds(), palette.Plan9)
		draw.Draw(p, p.Rect, fr, fr.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, cs)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, anim)
}

// List returns every recording, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadStats(id string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, statsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		tick, err1 := strconv.Atoi(rec[0])
		alive, err2 := strconv.Atoi(rec[1])
		bright, err3 := strconv.ParseFloat(rec[2], 64)
		cov, err4 := strconv.ParseFloat(rec[3], 64)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			return nil, fmt.Errorf("storage: %s row %s: %w", statsFile, rec[0], err)
		}
		samples = append(samples, Sample{Tick: tick, Alive: alive, Brightness: bright, Coverage: cov})
	}
	return samples, nil
}

func (s *Store) LoadFrames(id string) (*gif.GIF, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoFrames
		}
		return nil, err
	}
	defer f.Close()
	return gif.DecodeAll(f)
}

// Brightness extracts the brightness column.
func Brightness(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Brightness
	}
	return out
}

// Alive extracts the alive column as floats.
func Alive(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Alive)
	}
	return out
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/papergraph/internal/layout"
)

const (
	metadataFile  = "metadata.json"
	positionsFile = "positions.csv"
	linksFile     = "links.csv"
	energyFile    = "energy.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Dataset   string             `json:"dataset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Elapsed   float64            `json:"elapsed"`
	Nodes     int                `json:"nodes"`
	Links     int                `json:"links"`
	Params    layout.Params      `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Position is one stored node of a finished layout.
type Position struct {
	ID       string
	Position layout.Vec3
	Color    string
}

func PositionsOf[M any](nodes []layout.Renderable[M]) []Position {
	out := make([]Position, len(nodes))
	for i, n := range nodes {
		out[i] = Position{ID: n.ID, Position: n.Position, Color: n.Color}
	}
	return out
}

// Run is everything Save persists for one layout.
type Run struct {
	Meta      RunMetadata
	Positions []Position
	Links     []layout.LinkInput
	Energy    []float64
}

// Save writes the run under a fresh id of the form <dataset>_<uuid prefix>
// and returns that id. Meta.ID and Meta.Timestamp are filled in.
func (s *Store) Save(run *Run) (string, error) {
	runID := fmt.Sprintf("%s_%s", slug(run.Meta.Dataset), uuid.NewString()[:8])
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, runID, run); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// writeRun writes every file of a run into runDir.
func writeRun(runDir, runID string, run *Run) error {
	meta := run.Meta
	meta.ID = runID
	meta.Timestamp = time.Now()
	if meta.Nodes == 0 {
		meta.Nodes = len(run.Positions)
	}
	if meta.Links == 0 {
		meta.Links = len(run.Links)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}

	rows := make([][]string, 0, len(run.Positions)+1)
	rows = append(rows, []string{"id", "x", "y", "z", "color"})
	for _, p := range run.Positions {
		rows = append(rows, []string{p.ID, formatFloat(p.Position.X), formatFloat(p.Position.Y), formatFloat(p.Position.Z), p.Color})
	}
	if err := writeCSV(filepath.Join(runDir, positionsFile), rows); err != nil {
		return err
	}

	rows = make([][]string, 0, len(run.Links)+1)
	rows = append(rows, []string{"source", "target"})
	for _, l := range run.Links {
		rows = append(rows, []string{l.Source, l.Target})
	}
	if err := writeCSV(filepath.Join(runDir, linksFile), rows); err != nil {
		return err
	}

	rows = make([][]string, 0, len(run.Energy)+1)
	rows = append(rows, []string{"frame", "energy"})
	for i, e := range run.Energy {
		rows = append(rows, []string{strconv.Itoa(i), formatFloat(e)})
	}
	return writeCSV(filepath.Join(runDir, energyFile), rows)
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadPositions(runID string) ([]Position, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), positionsFile), runID)
	if err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(records))
	for i, record := range records {
		if len(record) < 4 {
			return nil, fmt.Errorf("storage: %s line %d: expected at least 4 fields", positionsFile, i+2)
		}
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", positionsFile, i+2, err)
			}
			vals[j] = v
		}
		p := Position{ID: record[0], Position: layout.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}}
		if len(record) > 4 {
			p.Color = record[4]
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func (s *Store) LoadLinks(runID string) ([]layout.LinkInput, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), linksFile), runID)
	if err != nil {
		return nil, err
	}

	links := make([]layout.LinkInput, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		links = append(links, layout.LinkInput{Source: record[0], Target: record[1]})
	}
	return links, nil
}

func (s *Store) LoadEnergy(runID string) ([]float64, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), energyFile), runID)
	if err != nil {
		return nil, err
	}

	energy := make([]float64, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		energy = append(energy, v)
	}
	return energy, nil
}

// Delete removes a stored run.
func (s *Store) Delete(runID string) error {
	dir := s.Dir(runID)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(dir)
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

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

// readCSV returns the records after the header row.
func readCSV(path, runID string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func slug(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || base == "" || base == "." {
		return "demo"
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

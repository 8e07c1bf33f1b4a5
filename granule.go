/*
Copyright © 2026 the SDR authors.
This file is part of SDR.

SDR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SDR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SDR.  If not, see <http://www.gnu.org/licenses/>.
*/

package sdr

import (
	"errors"
	"fmt"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/sdr/store"
)

// Names of the file keys that granule metadata is read from.
const (
	BeginningDateKey    = "beginning_date"
	BeginningTimeKey    = "beginning_time"
	EndingDateKey       = "ending_date"
	EndingTimeKey       = "ending_time"
	BeginningOrbitKey   = "beginning_orbit_number"
	EndingOrbitKey      = "ending_orbit_number"
	PlatformKey         = "platform_short_name"
	InstrumentKey       = "instrument_short_name"
	GeoFileReferenceKey = "geo_file_reference"
	GRingLongitudeKey   = "gring_longitude"
	GRingLatitudeKey    = "gring_latitude"
)

var metadataKeys = []string{
	BeginningDateKey, BeginningTimeKey, EndingDateKey, EndingTimeKey,
	BeginningOrbitKey, EndingOrbitKey, PlatformKey, InstrumentKey,
	GeoFileReferenceKey, GRingLongitudeKey, GRingLatitudeKey,
}

// Swath is a two dimensional array of samples together with its
// validity mask, where true marks an invalid sample.
type Swath struct {
	Data *sparse.DenseArray
	Mask []bool
}

// Rows returns the number of rows in the swath.
func (s *Swath) Rows() int { return s.Data.Shape[0] }

// Cols returns the number of samples in each row of the swath.
func (s *Swath) Cols() int { return rowSize(s.Data.Shape) }

// Granule reads one data file. Its metadata is read when the Granule is
// created; variable contents are read from the file on each request.
type Granule struct {
	FileType string
	Filename string

	keys   FileKeys
	params map[string]string
	meta   store.Metadata
	open   store.Opener
	log    logrus.FieldLogger

	start, end Timestamp
}

// GranuleFunc opens a granule of file type ft.
type GranuleFunc func(ft *FileType, filename string, keys FileKeys, open store.Opener, log logrus.FieldLogger) (*Granule, error)

// DefaultGranuleReader is the name NewGranule is registered under.
const DefaultGranuleReader = "sdr"

var granuleReaders = map[string]GranuleFunc{
	DefaultGranuleReader: NewGranule,
}

// RegisterGranuleReader makes f available to file types whose Reader
// is name. It is not safe to call concurrently with reading.
func RegisterGranuleReader(name string, f GranuleFunc) {
	granuleReaders[name] = f
}

func granuleReader(name string) (GranuleFunc, error) {
	if name == "" {
		name = DefaultGranuleReader
	}
	f, ok := granuleReaders[name]
	if !ok {
		return nil, fmt.Errorf("sdr: no granule reader registered as %q", name)
	}
	return f, nil
}

// NewGranule opens filename, harvests its metadata and parses its
// start and end times.
func NewGranule(ft *FileType, filename string, keys FileKeys, open store.Opener, log logrus.FieldLogger) (*Granule, error) {
	f, err := open(filename)
	if err != nil {
		return nil, err
	}
	meta, err := store.Harvest(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("sdr: reading metadata from %s: %w", filename, err)
	}
	g := &Granule{
		FileType: ft.Name,
		Filename: filename,
		keys:     keys,
		params:   ft.Params,
		meta:     meta,
		open:     open,
		log:      log.WithFields(logrus.Fields{"file": filename, "file_type": ft.Name}),
	}
	if g.start, err = g.timestamp(BeginningDateKey, BeginningTimeKey); err != nil {
		return nil, err
	}
	if g.end, err = g.timestamp(EndingDateKey, EndingTimeKey); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Granule) timestamp(dateKey, timeKey string) (Timestamp, error) {
	date, err := g.String(dateKey)
	if err != nil {
		return Timestamp{}, err
	}
	clock, err := g.String(timeKey)
	if err != nil {
		return Timestamp{}, err
	}
	ts, err := ParseNPPTime(date, clock)
	if err != nil {
		return Timestamp{}, fmt.Errorf("sdr: %s: %w", g.Filename, err)
	}
	if !ts.Valid {
		return Timestamp{}, fmt.Errorf("sdr: %s: %w", g.Filename, InvalidDateError{Date: date, Time: clock})
	}
	return ts, nil
}

// Get returns the value of item, which is a file key name, a file key
// name followed by "/shape", or a raw metadata path. Array variables
// are read from the file and returned as *store.Raw.
func (g *Granule) Get(item string) (interface{}, error) {
	path, err := g.keys.Resolve(item, g.params)
	if err != nil {
		return nil, err
	}
	v, ok := g.meta[path]
	if !ok {
		return nil, fmt.Errorf("sdr: %s: %w", g.Filename, store.KeyError{Key: path})
	}
	if _, isVar := v.(store.Variable); isVar {
		return g.read(path)
	}
	return v, nil
}

func (g *Granule) read(path string) (*store.Raw, error) {
	f, err := g.open(g.Filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Read(path)
}

// String returns item as a string.
func (g *Granule) String(item string) (string, error) {
	v, err := g.Get(item)
	if err != nil {
		return "", err
	}
	s, ok := store.String(v)
	if !ok {
		return "", fmt.Errorf("sdr: %s: %s holds %T, not a string", g.Filename, item, v)
	}
	return s, nil
}

// Float64s returns item as a slice of numbers.
func (g *Granule) Float64s(item string) ([]float64, error) {
	v, err := g.Get(item)
	if err != nil {
		return nil, err
	}
	f, ok := store.Float64s(v)
	if !ok {
		return nil, fmt.Errorf("sdr: %s: %s holds %T, not numbers", g.Filename, item, v)
	}
	return f, nil
}

// Int returns item as an integer.
func (g *Granule) Int(item string) (int, error) {
	f, err := g.Float64s(item)
	if err != nil {
		return 0, err
	}
	if len(f) != 1 {
		return 0, fmt.Errorf("sdr: %s: %s holds %d values, not one", g.Filename, item, len(f))
	}
	return int(f[0]), nil
}

// Shape returns the shape of the variable for the named file key.
func (g *Granule) Shape(key string) ([]int, error) {
	path, err := g.keys.Path(key, g.params)
	if err != nil {
		return nil, err
	}
	s, err := g.meta.Shape(path)
	if err != nil {
		return nil, fmt.Errorf("sdr: %s: %w", g.Filename, err)
	}
	return s, nil
}

// StartTime returns the time of the first observation in the granule.
func (g *Granule) StartTime() time.Time { return g.start.Time }

// EndTime returns the time of the last observation in the granule.
func (g *Granule) EndTime() time.Time { return g.end.Time }

// BeginOrbit returns the orbit number at the start of the granule.
func (g *Granule) BeginOrbit() (int, error) { return g.Int(BeginningOrbitKey) }

// EndOrbit returns the orbit number at the end of the granule.
func (g *Granule) EndOrbit() (int, error) { return g.Int(EndingOrbitKey) }

// Platform returns the short name of the satellite.
func (g *Granule) Platform() (string, error) { return g.String(PlatformKey) }

// Sensor returns the short name of the instrument.
func (g *Granule) Sensor() (string, error) { return g.String(InstrumentKey) }

// GeoFilename returns the base name of the geolocation file that
// belongs to the granule.
func (g *Granule) GeoFilename() (string, error) { return g.String(GeoFileReferenceKey) }

// RingLonLats returns the longitudes and latitudes of the vertices of
// the granule's outline.
func (g *Granule) RingLonLats() (lons, lats []float64, err error) {
	if lons, err = g.Float64s(GRingLongitudeKey); err != nil {
		return nil, nil, err
	}
	if lats, err = g.Float64s(GRingLatitudeKey); err != nil {
		return nil, nil, err
	}
	if len(lons) != len(lats) || len(lons) < 3 {
		return nil, nil, fmt.Errorf("sdr: %s: outline has %d longitudes and %d latitudes", g.Filename, len(lons), len(lats))
	}
	return lons, lats, nil
}

// Boundary returns the granule's outline as a closed polygon in
// longitude and latitude.
func (g *Granule) Boundary() (geom.Polygon, error) {
	lons, lats, err := g.RingLonLats()
	if err != nil {
		return nil, err
	}
	ring := make([]geom.Point, len(lons), len(lons)+1)
	for i := range lons {
		ring[i] = geom.Point{X: lons[i], Y: lats[i]}
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return geom.Polygon{ring}, nil
}

// FileUnits returns the units the named variable is stored in.
func (g *Granule) FileUnits(key string) (string, error) {
	k, err := g.keys.Get(key)
	if err != nil {
		return "", err
	}
	if k.FileUnits != "" {
		return k.FileUnits, nil
	}
	u := guessUnits(key)
	if u == "" {
		g.log.WithField("file_key", key).Debug("unknown units")
	}
	return u, nil
}

// Units returns the units of the named variable after scaling.
func (g *Granule) Units(key string) (string, error) {
	k, err := g.keys.Get(key)
	if err != nil {
		return "", err
	}
	if k.Units != "" {
		return k.Units, nil
	}
	return g.FileUnits(key)
}

// SwathData reads the named variable, masks fill values, casts it to
// the key's Kind, and applies any scaling factors. Fill values are
// recognized by how the variable is stored in the file, not by Kind.
// If data or mask are not nil they are filled in place and must have
// one entry per sample; otherwise they are allocated. Values already
// set in mask are kept.
func (g *Granule) SwathData(key string, data []float64, mask []bool) (*Swath, error) {
	k, err := g.keys.Get(key)
	if err != nil {
		return nil, err
	}
	path, err := g.keys.Path(key, g.params)
	if err != nil {
		return nil, err
	}
	raw, err := g.read(path)
	if err != nil {
		return nil, err
	}
	n := len(raw.Values)
	if data == nil {
		data = make([]float64, n)
	}
	if mask == nil {
		mask = make([]bool, n)
	}
	if len(data) != n || len(mask) != n {
		return nil, fmt.Errorf("sdr: %s: %s has %d samples but the output holds %d values and %d mask entries",
			g.Filename, key, n, len(data), len(mask))
	}
	fill := k.Fill(raw.Float)
	for i, v := range raw.Values {
		mask[i] = mask[i] || fill.Invalid(v)
		data[i] = k.Kind.Cast(v)
	}

	var factors []float64
	if k.ScalingFactors != "" {
		factors, err = g.Float64s(k.ScalingFactors)
		if err != nil {
			if !isMissing(err) {
				return nil, fmt.Errorf("sdr: %s: reading scaling factors of %s: %w", g.Filename, key, err)
			}
			g.log.WithField("file_key", key).Debug("no scaling factors found")
			factors = nil
		}
	}

	fileUnits, err := g.FileUnits(key)
	if err != nil {
		return nil, err
	}
	outUnits := k.Units
	if outUnits == "" {
		outUnits = fileUnits
	}
	if fileUnits != outUnits {
		if _, err := ConversionFactor(fileUnits, outUnits); err != nil {
			g.log.WithField("file_key", key).WithError(err).Debug("units not converted")
		}
	}
	factors = AdjustScalingFactors(factors, fileUnits, outUnits)
	if factors != nil {
		rows := 1
		if len(raw.Shape) > 0 {
			rows = raw.Shape[0]
		}
		if err := scaleSwath(data, mask, rows, factors); err != nil {
			return nil, fmt.Errorf("sdr: %s: %s: %w", g.Filename, key, err)
		}
	}

	shape := raw.Shape
	if len(shape) == 1 {
		shape = []int{shape[0], 1}
	}
	d := &sparse.DenseArray{Elements: data, Shape: append([]int(nil), shape...)}
	d.Fix()
	return &Swath{Data: d, Mask: mask}, nil
}

// isMissing reports whether err means a variable is absent from a file.
func isMissing(err error) bool {
	var ke store.KeyError
	var nf store.NotFoundError
	return errors.As(err, &ke) || errors.As(err, &nf)
}

// Fill value codes and the names of the conditions they stand for.
var invalidCodes = []struct {
	name string
	i    float64
	f    float32
}{
	{"na", 65535, -999.9},
	{"miss", 65534, -999.8},
	{"obpt", 65533, -999.7},
	{"ogpt", 65532, -999.6},
	{"err", 65531, -999.5},
	{"elint", 65530, -999.4},
	{"vdne", 65529, -999.3},
	{"soub", 65528, -999.2},
}

// InvalidCodes returns the names of the fill value kinds InvalidInfo
// counts, in order of their integer codes from 65535 down.
func InvalidCodes() []string {
	names := make([]string, len(invalidCodes))
	for i, c := range invalidCodes {
		names[i] = c.name
	}
	return names
}

// InvalidInfo counts the raw samples of the named variable that hold
// each kind of fill value.
func (g *Granule) InvalidInfo(key string) (map[string]int, error) {
	path, err := g.keys.Path(key, g.params)
	if err != nil {
		return nil, err
	}
	raw, err := g.read(path)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(invalidCodes))
	for _, c := range invalidCodes {
		counts[c.name] = 0
	}
	for _, v := range raw.Values {
		for _, c := range invalidCodes {
			if (raw.Float && float32(v) == c.f) || (!raw.Float && v == c.i) {
				counts[c.name]++
				break
			}
		}
	}
	return counts, nil
}

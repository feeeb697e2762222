/*
 * traj.go, part of goneo.
 *
 * Copyright 2025 Federico Zahariev <fzahari@iastate.edu>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package traj reads and writes goneo trajectories as tabular text: one row
per step, fixed columns, comma separated, with a one-line header. The format
is deliberately dull so downstream plotting and spreadsheet tools can consume
it directly.

Compression is selected by the file extension: ".zst" writes
zstandard-compressed text and ".gz" gzip; anything else is plain text. The
reader applies the same rule.*/
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fzahari/goneo/dynamics"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	neo "github.com/fzahari/goneo"
)

//header is the fixed column set, one row per propagation step.
const header = "time,quantum_position,classical_position,electronic_energy,protonic_energy,total_energy,quantum_force,smoothed_force,constraint_force,field,trace_dev,herm_dev"

const ncols = 12

//W writes a trajectory, step by step.
type W struct {
	f         *os.File
	h         io.WriteCloser
	buf       *bufio.Writer
	filename  string
	writeable bool
	nwritten  int
}

//NewWriter creates the trajectory file and writes the header. The extension
//picks the compression.
func NewWriter(name string) (*W, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}}
	}
	w := &W{f: f, filename: name, writeable: true}
	switch {
	case strings.HasSuffix(name, ".zst"):
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), name, []string{"NewWriter"}}
		}
		w.h = enc
	case strings.HasSuffix(name, ".gz"):
		w.h = gzip.NewWriter(f)
	default:
		w.h = nopCloser{f}
	}
	w.buf = bufio.NewWriter(w.h)
	if _, err := fmt.Fprintf(w.buf, "# %s\n", header); err != nil {
		w.Close()
		return nil, Error{err.Error(), name, []string{"NewWriter"}}
	}
	return w, nil
}

//WNext appends one step record.
func (w *W) WNext(s dynamics.Step) error {
	if !w.writeable {
		return Error{TrajUnIniWrite, w.filename, []string{"WNext"}}
	}
	_, err := fmt.Fprintf(w.buf, "%.8e,%.8e,%.8e,%.8e,%.8e,%.8e,%.8e,%.8e,%.8e,%.8e,%.3e,%.3e\n",
		s.Time, s.QuantumPosition, s.ClassicalPosition,
		s.ElectronicEnergy, s.ProtonicEnergy, s.TotalEnergy,
		s.QuantumForce, s.SmoothedForce, s.ConstraintForce, s.Field,
		s.TraceDeviation, s.HermDeviation)
	if err != nil {
		return Error{err.Error(), w.filename, []string{"WNext"}}
	}
	w.nwritten++
	return nil
}

//WriteResult appends every step of a result.
func (w *W) WriteResult(r *dynamics.Result) error {
	for _, s := range r.Steps {
		if err := w.WNext(s); err != nil {
			return errDecorate(err, "WriteResult")
		}
	}
	return nil
}

//Len returns the number of steps written so far.
func (w *W) Len() int { return w.nwritten }

//Close flushes and closes the file. The writer is unusable afterwards.
func (w *W) Close() error {
	if w == nil || !w.writeable {
		return nil
	}
	w.writeable = false
	var first error
	if err := w.buf.Flush(); err != nil {
		first = err
	}
	if err := w.h.Close(); err != nil && first == nil {
		first = err
	}
	if err := w.f.Close(); err != nil && first == nil {
		first = err
	}
	if first != nil {
		return Error{first.Error(), w.filename, []string{"Close"}}
	}
	return nil
}

//Read loads a full trajectory file written by W. The method and status of
//the returned result are not stored in the file and are left zero.
func Read(name string) (*dynamics.Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}}
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, Error{err.Error(), name, []string{"Read"}}
		}
		defer dec.Close()
		r = dec
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, Error{err.Error(), name, []string{"Read"}}
		}
		defer gz.Close()
		r = gz
	}
	res := new(dynamics.Result)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != ncols {
			return nil, Error{fmt.Sprintf("%s: line %d has %d columns, want %d", WrongFormat, line, len(fields), ncols), name, []string{"Read"}}
		}
		vals := make([]float64, ncols)
		for i, fstr := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(fstr), 64)
			if err != nil {
				return nil, Error{fmt.Sprintf("%s: line %d: %v", WrongFormat, line, err), name, []string{"Read"}}
			}
			vals[i] = v
		}
		res.Steps = append(res.Steps, dynamics.Step{
			Time:              vals[0],
			QuantumPosition:   vals[1],
			ClassicalPosition: vals[2],
			ElectronicEnergy:  vals[3],
			ProtonicEnergy:    vals[4],
			TotalEnergy:       vals[5],
			QuantumForce:      vals[6],
			SmoothedForce:     vals[7],
			ConstraintForce:   vals[8],
			Field:             vals[9],
			TraceDeviation:    vals[10],
			HermDeviation:     vals[11],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}}
	}
	return res, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

//Errors

//errDecorate decorates an error that implements neo.Error with the caller's
//name before returning it.
func errDecorate(err error, caller string) error {
	e, ok := err.(neo.Error)
	if !ok {
		return err
	}
	e.Decorate(caller)
	return e
}

//Error is the general structure for trajectory-file errors. It fulfills
//neo.Error.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("goneo trajectory file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

const (
	TrajUnIniWrite = "trajectory writer already closed"
	UnableToOpen   = "unable to open file"
	WrongFormat    = "wrong format in trajectory file"
)
